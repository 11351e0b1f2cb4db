package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
	"github.com/kanamori/govport/internal/services/authz"
	"github.com/kanamori/govport/internal/services/dashboard"
)

// Home serves the HOME overview: KPIs, chart series, and the filtered
// detail table for today's pipeline health.
//
// Query parameters: domain, process (warehouse-side filters), outcome,
// min_duration (in-memory row filters).
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	f := repositories.HealthFilter{
		Domain:  r.URL.Query().Get("domain"),
		Process: r.URL.Query().Get("process"),
	}
	rf := dashboard.RowFilter{
		Outcome:     r.URL.Query().Get("outcome"),
		MinDuration: queryFloat(r, "min_duration", 0),
	}

	overview := h.dashboard.HomeOverview(r.Context(), f, rf)
	h.recordWarehouseQuery()

	writeJSON(w, http.StatusOK, overview)
	h.guard.LogPageView(r.Context(), id, entities.PageHome, time.Since(start), 1, "")
}

// HomeExport streams today's filtered health rows as a CSV download.
// Export is a named permission on top of page access.
func (h *Handler) HomeExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := identityFrom(r.Context())

	if !authz.HasPermission(id.Role, authz.PermissionExport) {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:  "access denied",
			Reason: fmt.Sprintf("role %s lacks %s permission", entities.NormalizeRole(id.Role), authz.PermissionExport),
		})
		return
	}

	f := repositories.HealthFilter{
		Domain:  r.URL.Query().Get("domain"),
		Process: r.URL.Query().Get("process"),
	}
	rf := dashboard.RowFilter{
		Outcome:     r.URL.Query().Get("outcome"),
		MinDuration: queryFloat(r, "min_duration", 0),
	}

	runs := dashboard.ApplyRowFilter(h.dashboard.TodayHealth(r.Context(), f), rf)
	h.recordWarehouseQuery()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="health_%s.csv"`, time.Now().Format("20060102")))
	if err := dashboard.WriteHealthCSV(w, runs); err != nil {
		log.Printf("Failed to write csv export: %v", err)
		return
	}

	h.guard.LogPageView(r.Context(), id, entities.PageHome, time.Since(start), 1, "")
}

func (h *Handler) recordWarehouseQuery() {
	h.collector.RecordWarehouseQuery()
	if h.exporter != nil {
		h.exporter.RecordWarehouseQuery()
	}
}
