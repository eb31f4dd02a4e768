// Package store keeps the studio's records: in-memory registries for
// datasets, models and runs, a sqlite-backed run history, and an LRU score
// cache. The store is passed explicitly to whoever needs it; there is no
// package-level instance.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jemsbhai/explainiverse-studio/dataset"
	"github.com/jemsbhai/explainiverse-studio/engine"
)

type DatasetRecord struct {
	DatasetID    string   `json:"dataset_id"`
	Filename     string   `json:"filename"`
	Rows         int      `json:"rows"`
	Columns      []string `json:"columns"`
	TargetColumn string   `json:"target_column,omitempty"`
}

type ModelRecord struct {
	ModelID      string          `json:"model_id"`
	DatasetID    string          `json:"dataset_id"`
	TargetColumn string          `json:"target_column"`
	ModelType    string          `json:"model_type"`
	TaskType     engine.TaskType `json:"task_type"`
	FeatureCount int             `json:"feature_count"`
}

type RunRecord struct {
	RunID     string    `json:"run_id"`
	DatasetID string    `json:"dataset_id"`
	ModelID   string    `json:"model_id"`
	Explainer string    `json:"explainer"`
	Metric    string    `json:"metric"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the keyed in-memory registry. Reads and writes are arbitrated
// here; callers never touch the maps directly.
type Store struct {
	mu sync.RWMutex

	datasets map[string]*DatasetRecord
	tables   map[string]*dataset.Table

	models        map[string]*ModelRecord
	modelObjects  map[string]engine.Model
	modelFeatures map[string][]string

	runs map[string]*RunRecord
}

func New() *Store {
	return &Store{
		datasets:      make(map[string]*DatasetRecord),
		tables:        make(map[string]*dataset.Table),
		models:        make(map[string]*ModelRecord),
		modelObjects:  make(map[string]engine.Model),
		modelFeatures: make(map[string][]string),
		runs:          make(map[string]*RunRecord),
	}
}

func nextID(prefix string, count int) string {
	return fmt.Sprintf("%s_%03d", prefix, count+1)
}

func (s *Store) PutDataset(record *DatasetRecord, table *dataset.Table) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := nextID("ds", len(s.datasets))
	record.DatasetID = id
	s.datasets[id] = record
	s.tables[id] = table
	return id
}

func (s *Store) Dataset(id string) (*DatasetRecord, *dataset.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.datasets[id]
	if !ok {
		return nil, nil, false
	}
	return record, s.tables[id], true
}

func (s *Store) Datasets() []*DatasetRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*DatasetRecord, 0, len(s.datasets))
	for _, record := range s.datasets {
		out = append(out, record)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].DatasetID < out[b].DatasetID })
	return out
}

// PutModel registers a trained model together with its feature order and
// sets the dataset's target column.
func (s *Store) PutModel(record *ModelRecord, model engine.Model, features []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := nextID("model", len(s.models))
	record.ModelID = id
	s.models[id] = record
	s.modelObjects[id] = model
	s.modelFeatures[id] = append([]string(nil), features...)
	if ds, ok := s.datasets[record.DatasetID]; ok {
		ds.TargetColumn = record.TargetColumn
	}
	return id
}

func (s *Store) Model(id string) (*ModelRecord, engine.Model, []string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.models[id]
	if !ok {
		return nil, nil, nil, false
	}
	return record, s.modelObjects[id], append([]string(nil), s.modelFeatures[id]...), true
}

func (s *Store) Models() []*ModelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ModelRecord, 0, len(s.models))
	for _, record := range s.models {
		out = append(out, record)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ModelID < out[b].ModelID })
	return out
}

func (s *Store) PutRun(record *RunRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := nextID("run", len(s.runs))
	record.RunID = id
	s.runs[id] = record
	return id
}

func (s *Store) Runs() []*RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		out = append(out, record)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].RunID < out[b].RunID })
	return out
}

func (s *Store) ClearRuns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := len(s.runs)
	s.runs = make(map[string]*RunRecord)
	return cleared
}
