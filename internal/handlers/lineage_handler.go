package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// LineageEdges serves the lineage edge list.
//
// Query parameters: node (substring match on either endpoint),
// active_only.
func (h *Handler) LineageEdges(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.LineageFilter{
		Node:       r.URL.Query().Get("node"),
		ActiveOnly: queryBool(r, "active_only"),
	}

	edges := h.dashboard.LineageEdges(r.Context(), f)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"edges": edges})
	h.guard.LogPageView(r.Context(), id, entities.PageLineage, time.Since(start), 1, "")
}

// DatasetLineage serves the upstream and downstream walks for one
// dataset.
//
// Query parameter: depth (default 3).
func (h *Handler) DatasetLineage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	datasetID := chi.URLParam(r, "id")
	if datasetID == "" {
		writeError(w, http.StatusBadRequest, "dataset id is required")
		return
	}

	lineage := h.dashboard.DatasetLineage(r.Context(), datasetID, queryInt(r, "depth", 3))
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, lineage)
	h.guard.LogPageView(r.Context(), id, entities.PageLineage, time.Since(start), 1, "")
}
