package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kanamori/govport/internal/repositories"
)

var validLookupKinds = map[repositories.LookupKind]bool{
	repositories.LookupDomains:         true,
	repositories.LookupProcesses:       true,
	repositories.LookupSystems:         true,
	repositories.LookupClassifications: true,
	repositories.LookupRuleTypes:       true,
	repositories.LookupControlTypes:    true,
	repositories.LookupRiskCategories:  true,
}

// SearchDatasets serves catalog search results.
//
// Query parameters: q (search term), limit.
func (h *Handler) SearchDatasets(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	datasets := h.dashboard.SearchDatasets(r.Context(), term, queryInt(r, "limit", 50))
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": datasets})
}

// Lookup serves one cached lookup list by kind.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	kind := repositories.LookupKind(chi.URLParam(r, "kind"))
	if !validLookupKinds[kind] {
		writeError(w, http.StatusNotFound, "unknown lookup kind")
		return
	}

	values, err := h.lookups.Lookup(r.Context(), kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load lookup list")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"values": values})
}
