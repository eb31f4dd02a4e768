package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jemsbhai/explainiverse-studio/dataset"
)

func TestStoreIDs(t *testing.T) {
	s := New()
	table, err := dataset.ParseCSV(strings.NewReader("a,b\n1,2\n3,4\n"), dataset.ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := s.PutDataset(&DatasetRecord{Filename: "one.csv", Rows: 2, Columns: []string{"a", "b"}}, table)
	second := s.PutDataset(&DatasetRecord{Filename: "two.csv", Rows: 2, Columns: []string{"a", "b"}}, table)
	if first != "ds_001" || second != "ds_002" {
		t.Fatalf("unexpected ids: %s, %s", first, second)
	}

	record, tbl, ok := s.Dataset("ds_001")
	if !ok || record.Filename != "one.csv" || tbl == nil {
		t.Fatalf("dataset lookup failed: %+v", record)
	}
	if _, _, ok := s.Dataset("ds_999"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestStoreModelSetsDatasetTarget(t *testing.T) {
	s := New()
	table, _ := dataset.ParseCSV(strings.NewReader("a,y\n1,0\n2,1\n"), dataset.ParseOptions{})
	dsID := s.PutDataset(&DatasetRecord{Filename: "d.csv", Rows: 2, Columns: []string{"a", "y"}}, table)

	modelID := s.PutModel(&ModelRecord{DatasetID: dsID, TargetColumn: "y", ModelType: "random_forest"}, nil, []string{"a"})
	if modelID != "model_001" {
		t.Fatalf("unexpected model id: %s", modelID)
	}

	dsRecord, _, _ := s.Dataset(dsID)
	if dsRecord.TargetColumn != "y" {
		t.Fatalf("expected target column set on dataset, got %q", dsRecord.TargetColumn)
	}

	_, _, features, ok := s.Model(modelID)
	if !ok || len(features) != 1 || features[0] != "a" {
		t.Fatalf("model lookup failed: %v", features)
	}
}

func TestStoreRuns(t *testing.T) {
	s := New()
	id := s.PutRun(&RunRecord{DatasetID: "ds_001", ModelID: "model_001", Explainer: "shap", Metric: "sufficiency", Score: 0.9, CreatedAt: time.Now()})
	if id != "run_001" {
		t.Fatalf("unexpected run id: %s", id)
	}
	if len(s.Runs()) != 1 {
		t.Fatal("expected one run")
	}
	if cleared := s.ClearRuns(); cleared != 1 {
		t.Fatalf("expected 1 cleared, got %d", cleared)
	}
	if len(s.Runs()) != 0 {
		t.Fatal("expected empty runs after clear")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	history, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run := &RunRecord{
		RunID:     "run_001",
		DatasetID: "ds_001",
		ModelID:   "model_001",
		Explainer: "lime",
		Metric:    "comprehensiveness",
		Score:     0.42,
		CreatedAt: time.Now().UTC(),
	}
	if err := history.Append(run); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := history.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].RunID != "run_001" || runs[0].Score != 0.42 {
		t.Fatalf("unexpected run: %+v", runs[0])
	}
}

func TestScoreCacheInvalidation(t *testing.T) {
	cache, err := NewScoreCache(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Put("ds_001", "model_001", "shap", "sufficiency", 0.8)
	cache.Put("ds_001", "model_002", "shap", "sufficiency", 0.6)

	if score, ok := cache.Get("ds_001", "model_001", "shap", "sufficiency"); !ok || score != 0.8 {
		t.Fatalf("expected hit 0.8, got %f %v", score, ok)
	}

	cache.InvalidateModel("model_001")
	if _, ok := cache.Get("ds_001", "model_001", "shap", "sufficiency"); ok {
		t.Fatal("expected invalidated entry to miss")
	}
	if _, ok := cache.Get("ds_001", "model_002", "shap", "sufficiency"); !ok {
		t.Fatal("other model's entry must survive")
	}
}
