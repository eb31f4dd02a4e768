package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jemsbhai/explainiverse-studio/store"
)

// API carries the handlers' collaborators. History, Cache and Hub may be
// nil; the corresponding behavior is simply skipped.
type API struct {
	Store   *store.Store
	History *store.History
	Cache   *store.ScoreCache
	Hub     *RunHub
	Logger  *zap.Logger
}

func NewAPI(s *store.Store, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{Store: s, Logger: logger}
}

// RegisterRoutes wires every studio endpoint onto the mux.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", a.handleHealth)

	mux.HandleFunc("POST /api/datasets", a.handleUploadDataset)
	mux.HandleFunc("GET /api/datasets", a.handleListDatasets)
	mux.HandleFunc("GET /api/datasets/{id}", a.handleGetDataset)

	mux.HandleFunc("POST /api/models/train", a.handleTrainModel)
	mux.HandleFunc("GET /api/models", a.handleListModels)

	mux.HandleFunc("GET /api/explainers/compatible", a.handleCompatibleExplainers)

	mux.HandleFunc("POST /api/runs", a.handleCreateRun)
	mux.HandleFunc("GET /api/runs", a.handleListRuns)
	mux.HandleFunc("GET /api/runs/summary", a.handleRunSummary)
	mux.HandleFunc("GET /api/runs/leaderboard", a.handleRunLeaderboard)
	mux.HandleFunc("GET /api/runs/report", a.handleRunReport)
	mux.HandleFunc("DELETE /api/runs", a.handleClearRuns)

	if a.Hub != nil {
		mux.HandleFunc("GET /api/ws/runs", a.Hub.ServeWS)
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}
