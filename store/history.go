package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// History is the append-only sqlite log of completed runs. Unlike the
// in-memory registries it survives restarts.
type History struct {
	db *sql.DB
}

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	query := `
    CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id VARCHAR(20),
        dataset_id VARCHAR(20),
        model_id VARCHAR(20),
        explainer VARCHAR(50),
        metric VARCHAR(50),
        score REAL,
        created_at DATETIME
    );`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

func (h *History) Append(run *RunRecord) error {
	_, err := h.db.Exec(
		`INSERT INTO runs (run_id, dataset_id, model_id, explainer, metric, score, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.DatasetID, run.ModelID, run.Explainer, run.Metric, run.Score,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (h *History) List() ([]RunRecord, error) {
	rows, err := h.db.Query(
		`SELECT run_id, dataset_id, model_id, explainer, metric, score, created_at
         FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var run RunRecord
		var createdAt string
		if err := rows.Scan(&run.RunID, &run.DatasetID, &run.ModelID, &run.Explainer, &run.Metric, &run.Score, &createdAt); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = ts
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (h *History) Close() error {
	return h.db.Close()
}
