package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jemsbhai/explainiverse-studio/dataset"
	"github.com/jemsbhai/explainiverse-studio/engine"
	"github.com/jemsbhai/explainiverse-studio/ml"
	"github.com/jemsbhai/explainiverse-studio/store"
)

type trainRequest struct {
	DatasetID    string `json:"dataset_id"`
	TargetColumn string `json:"target_column"`
	ModelType    string `json:"model_type"`
}

func (a *API) handleTrainModel(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ModelType == "" {
		req.ModelType = "random_forest"
	}

	_, table, ok := a.Store.Dataset(req.DatasetID)
	if !ok {
		respondError(w, http.StatusNotFound, "dataset not found")
		return
	}

	targetCells, ok := table.Column(req.TargetColumn)
	if !ok {
		respondError(w, http.StatusBadRequest, "target column not in dataset columns")
		return
	}

	frame, err := table.NumericFrame(req.TargetColumn)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if frame.NumCols() == 0 {
		respondError(w, http.StatusBadRequest, "no numeric feature columns available for training")
		return
	}
	dataset.ImputeMedians(frame)

	task := ml.InferTask(targetCells)
	features := frame.Rows()

	var model engine.Model
	if task == engine.TaskClassification {
		labels, classes, err := ml.EncodeLabels(targetCells)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		model, err = ml.Train(req.ModelType, task, features, labels, len(classes), nil)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		targets, err := ml.NumericTargets(targetCells)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		model, err = ml.Train(req.ModelType, task, features, nil, 0, targets)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	modelRecord := &store.ModelRecord{
		DatasetID:    req.DatasetID,
		TargetColumn: req.TargetColumn,
		ModelType:    req.ModelType,
		TaskType:     task,
		FeatureCount: frame.NumCols(),
	}
	id := a.Store.PutModel(modelRecord, model, frame.Names())
	if a.Cache != nil {
		a.Cache.InvalidateModel(id)
	}

	a.Logger.Info("model trained",
		zap.String("model_id", id),
		zap.String("dataset_id", req.DatasetID),
		zap.String("model_type", req.ModelType),
		zap.String("task_type", string(task)),
	)

	respondJSON(w, map[string]interface{}{
		"model_id":      id,
		"dataset_id":    req.DatasetID,
		"status":        "trained",
		"model_type":    req.ModelType,
		"task_type":     task,
		"feature_count": frame.NumCols(),
	})
}

func (a *API) handleListModels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{"models": a.Store.Models()})
}
