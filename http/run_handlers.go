package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jemsbhai/explainiverse-studio/dataset"
	"github.com/jemsbhai/explainiverse-studio/engine"
	"github.com/jemsbhai/explainiverse-studio/store"
)

type runRequest struct {
	DatasetID string `json:"dataset_id"`
	ModelID   string `json:"model_id"`
	Explainer string `json:"explainer"`
	Metric    string `json:"metric"`
}

func (a *API) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dsRecord, table, ok := a.Store.Dataset(req.DatasetID)
	if !ok {
		respondError(w, http.StatusNotFound, "dataset not found")
		return
	}
	modelRecord, model, features, ok := a.Store.Model(req.ModelID)
	if !ok {
		respondError(w, http.StatusNotFound, "model not found")
		return
	}
	if modelRecord.DatasetID != req.DatasetID {
		respondError(w, http.StatusBadRequest, "model and dataset mismatch")
		return
	}
	if model == nil || len(features) == 0 {
		respondError(w, http.StatusBadRequest, "model artifacts missing, retrain model")
		return
	}

	full, err := table.NumericFrame(modelRecord.TargetColumn)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dataset.ImputeMedians(full)
	frame, err := full.Select(features)
	if err != nil {
		respondError(w, http.StatusBadRequest, "model features missing from dataset")
		return
	}

	a.broadcast(RunEvent{Type: "run_started", DatasetID: req.DatasetID, ModelID: req.ModelID, Explainer: req.Explainer, Metric: req.Metric})

	score, cached, err := a.evaluate(model, modelRecord.TaskType, frame, req)
	if err != nil {
		a.Logger.Error("evaluation failed",
			zap.String("model_id", req.ModelID),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "evaluation failed: "+err.Error())
		return
	}

	run := &store.RunRecord{
		DatasetID: req.DatasetID,
		ModelID:   req.ModelID,
		Explainer: req.Explainer,
		Metric:    req.Metric,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}
	runID := a.Store.PutRun(run)

	if a.History != nil {
		if err := a.History.Append(run); err != nil {
			a.Logger.Warn("history append failed", zap.String("run_id", runID), zap.Error(err))
		}
	}

	a.broadcast(RunEvent{Type: "run_completed", RunID: runID, DatasetID: req.DatasetID, ModelID: req.ModelID, Explainer: req.Explainer, Metric: req.Metric, Score: score})

	a.Logger.Info("run completed",
		zap.String("run_id", runID),
		zap.String("explainer", req.Explainer),
		zap.String("metric", req.Metric),
		zap.Float64("score", score),
		zap.Bool("cached", cached),
	)

	respondJSON(w, map[string]interface{}{
		"run_id": runID,
		"status": "completed",
		"config": req,
		"results": map[string]interface{}{
			"metric":        req.Metric,
			"value":         score,
			"explainer":     req.Explainer,
			"target_column": modelRecord.TargetColumn,
			"dataset_rows":  dsRecord.Rows,
			"cached":        cached,
		},
	})
}

// evaluate consults the score cache first; evaluation is deterministic for
// a fixed (dataset, model, explainer, metric) tuple.
func (a *API) evaluate(model engine.Model, task engine.TaskType, frame *dataset.Frame, req runRequest) (float64, bool, error) {
	if a.Cache != nil {
		if score, ok := a.Cache.Get(req.DatasetID, req.ModelID, req.Explainer, req.Metric); ok {
			return score, true, nil
		}
	}
	score, err := engine.Evaluate(model, task, frame, req.Explainer, req.Metric)
	if err != nil {
		return 0, false, err
	}
	if a.Cache != nil {
		a.Cache.Put(req.DatasetID, req.ModelID, req.Explainer, req.Metric, score)
	}
	return score, false, nil
}

func (a *API) broadcast(event RunEvent) {
	if a.Hub != nil {
		a.Hub.Broadcast(event)
	}
}

func (a *API) handleListRuns(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{"runs": a.Store.Runs()})
}

func (a *API) runSummary() map[string]interface{} {
	runs := a.Store.Runs()
	if len(runs) == 0 {
		return map[string]interface{}{
			"total_runs":        0,
			"unique_explainers": 0,
			"unique_metrics":    0,
			"best_run":          nil,
			"latest_run":        nil,
		}
	}

	best := runs[0]
	latest := runs[0]
	explainers := make(map[string]bool)
	metrics := make(map[string]bool)
	for _, run := range runs {
		explainers[run.Explainer] = true
		metrics[run.Metric] = true
		if run.Score > best.Score {
			best = run
		}
		if run.CreatedAt.After(latest.CreatedAt) {
			latest = run
		}
	}

	return map[string]interface{}{
		"total_runs":        len(runs),
		"unique_explainers": len(explainers),
		"unique_metrics":    len(metrics),
		"best_run": map[string]interface{}{
			"run_id":    best.RunID,
			"explainer": best.Explainer,
			"metric":    best.Metric,
			"score":     best.Score,
		},
		"latest_run": map[string]interface{}{
			"run_id":     latest.RunID,
			"created_at": latest.CreatedAt,
		},
	}
}

func (a *API) handleRunSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, a.runSummary())
}

type leaderboardRow struct {
	Explainer string    `json:"explainer"`
	Metric    string    `json:"metric"`
	Count     int       `json:"count"`
	AvgScore  float64   `json:"avg_score"`
	BestScore float64   `json:"best_score"`
	LastRunAt time.Time `json:"last_run_at"`
}

func (a *API) leaderboard() []leaderboardRow {
	grouped := make(map[string]*leaderboardRow)
	for _, run := range a.Store.Runs() {
		key := run.Explainer + "|" + run.Metric
		row, ok := grouped[key]
		if !ok {
			row = &leaderboardRow{
				Explainer: run.Explainer,
				Metric:    run.Metric,
				BestScore: run.Score,
				LastRunAt: run.CreatedAt,
			}
			grouped[key] = row
		}
		total := row.AvgScore*float64(row.Count) + run.Score
		row.Count++
		row.AvgScore = total / float64(row.Count)
		if run.Score > row.BestScore {
			row.BestScore = run.Score
		}
		if run.CreatedAt.After(row.LastRunAt) {
			row.LastRunAt = run.CreatedAt
		}
	}

	rows := make([]leaderboardRow, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sortLeaderboard(rows)
	return rows
}

func sortLeaderboard(rows []leaderboardRow) {
	for i := 1; i < len(rows); i++ {
		j := i
		for j > 0 && rows[j-1].AvgScore < rows[j].AvgScore {
			rows[j-1], rows[j] = rows[j], rows[j-1]
			j--
		}
	}
}

func (a *API) handleRunLeaderboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{"rows": a.leaderboard()})
}

func (a *API) handleRunReport(w http.ResponseWriter, r *http.Request) {
	report := map[string]interface{}{
		"generated_at": time.Now().UTC(),
		"summary":      a.runSummary(),
		"leaderboard":  a.leaderboard(),
		"runs":         a.Store.Runs(),
		"metadata": map[string]string{
			"scoring_mode": "metric_execution",
			"store_mode":   "in_memory",
		},
	}
	if a.History != nil {
		if history, err := a.History.List(); err == nil {
			report["history"] = history
		}
	}
	respondJSON(w, report)
}

func (a *API) handleClearRuns(w http.ResponseWriter, r *http.Request) {
	cleared := a.Store.ClearRuns()
	if a.Cache != nil {
		a.Cache.Purge()
	}
	respondJSON(w, map[string]interface{}{"cleared": cleared})
}
