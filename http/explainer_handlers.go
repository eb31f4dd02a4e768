package http

import (
	"net/http"

	"github.com/jemsbhai/explainiverse-studio/catalog"
)

// handleCompatibleExplainers filters the catalog by the model's type. A
// missing or unknown model id returns the full registry; the filter is
// advisory and evaluation accepts any key regardless.
func (a *API) handleCompatibleExplainers(w http.ResponseWriter, r *http.Request) {
	modelID := r.URL.Query().Get("model_id")
	datasetID := r.URL.Query().Get("dataset_id")

	explainers := catalog.Explainers()
	if modelID != "" {
		if record, _, _, ok := a.Store.Model(modelID); ok {
			explainers = catalog.CompatibleExplainers(record.ModelType)
		}
	}

	respondJSON(w, map[string]interface{}{
		"model_id":   modelID,
		"dataset_id": datasetID,
		"explainers": explainers,
		"metrics":    catalog.Metrics(),
	})
}
