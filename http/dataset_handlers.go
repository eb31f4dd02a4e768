package http

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jemsbhai/explainiverse-studio/dataset"
	"github.com/jemsbhai/explainiverse-studio/store"
)

func (a *API) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	opts := dataset.ParseOptions{
		GBK: strings.EqualFold(r.FormValue("encoding"), "gbk"),
	}
	table, err := dataset.ParseCSV(file, opts)
	if err != nil {
		respondError(w, http.StatusBadRequest, "csv parse failed: "+err.Error())
		return
	}

	record := &store.DatasetRecord{
		Filename: header.Filename,
		Rows:     table.NumRows(),
		Columns:  append([]string(nil), table.Headers...),
	}
	id := a.Store.PutDataset(record, table)
	a.Logger.Info("dataset uploaded",
		zap.String("dataset_id", id),
		zap.String("filename", header.Filename),
		zap.Int("rows", table.NumRows()),
	)

	respondJSON(w, map[string]interface{}{
		"dataset_id": id,
		"filename":   header.Filename,
		"rows":       table.NumRows(),
		"columns":    record.Columns,
		"profile":    table.Profile(),
		"status":     "uploaded",
	})
}

func (a *API) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{"datasets": a.Store.Datasets()})
}

func (a *API) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	record, table, ok := a.Store.Dataset(id)
	if !ok {
		respondError(w, http.StatusNotFound, "dataset not found")
		return
	}
	respondJSON(w, map[string]interface{}{
		"dataset": record,
		"profile": table.Profile(),
	})
}
