package handlers

import (
	"net/http"
	"time"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// DQResults serves enriched data-quality results.
//
// Query parameters: domain, severity, outcome, limit.
func (h *Handler) DQResults(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.DQFilter{
		Domain:   r.URL.Query().Get("domain"),
		Severity: r.URL.Query().Get("severity"),
		Outcome:  r.URL.Query().Get("outcome"),
		Limit:    queryInt(r, "limit", repositories.DefaultResultLimit),
	}

	results := h.dashboard.DQResults(r.Context(), f)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
	h.guard.LogPageView(r.Context(), id, entities.PageDQExplorer, time.Since(start), 1, "")
}

// ControlResults serves control test results.
//
// Query parameters: control_type, outcome, limit.
func (h *Handler) ControlResults(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.ControlFilter{
		ControlType: r.URL.Query().Get("control_type"),
		Outcome:     r.URL.Query().Get("outcome"),
		Limit:       queryInt(r, "limit", repositories.DefaultResultLimit),
	}

	results := h.dashboard.ControlResults(r.Context(), f)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
	h.guard.LogPageView(r.Context(), id, entities.PageDQExplorer, time.Since(start), 1, "")
}

// Ownership serves the dataset-owner roster, optionally filtered by
// domain.
func (h *Handler) Ownership(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	owners := h.dashboard.DatasetOwners(r.Context(), r.URL.Query().Get("domain"))
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"owners": owners})
	h.guard.LogPageView(r.Context(), id, entities.PageOwnership, time.Since(start), 1, "")
}

// Glossary serves business glossary terms.
//
// Query parameters: search (term name or definition substring), domain.
func (h *Handler) Glossary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.GlossaryFilter{
		Search: r.URL.Query().Get("search"),
		Domain: r.URL.Query().Get("domain"),
	}

	terms := h.dashboard.BusinessGlossary(r.Context(), f)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"terms": terms})
	h.guard.LogPageView(r.Context(), id, entities.PageGlossary, time.Since(start), 1, "")
}

// Contracts serves data contracts.
//
// Query parameters: status, domain.
func (h *Handler) Contracts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.ContractFilter{
		Status: r.URL.Query().Get("status"),
		Domain: r.URL.Query().Get("domain"),
	}

	contracts := h.dashboard.DataContracts(r.Context(), f)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"contracts": contracts})
	h.guard.LogPageView(r.Context(), id, entities.PageContracts, time.Since(start), 1, "")
}

// Risk serves the risk dashboard rows.
//
// Query parameters: category, severity.
func (h *Handler) Risk(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.RiskFilter{
		Category: r.URL.Query().Get("category"),
		Severity: r.URL.Query().Get("severity"),
	}

	items := h.dashboard.RiskItems(r.Context(), f)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
	h.guard.LogPageView(r.Context(), id, entities.PageRisk, time.Since(start), 1, "")
}
