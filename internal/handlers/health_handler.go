package handlers

import "net/http"

// Healthz reports whether the warehouse connection is alive.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
