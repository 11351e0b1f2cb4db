package handlers

import (
	"context"
	"net/http"

	"github.com/kanamori/govport/internal/entities"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity extracts the caller identity from the X-User and X-Role
// headers and stores it on the request context. The warehouse session is
// the authority on who the user is; these headers arrive from the
// authenticating proxy in front of this service.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := entities.Identity{
			User: r.Header.Get("X-User"),
			Role: entities.NormalizeRole(r.Header.Get("X-Role")),
		}
		if id.User == "" {
			id.User = "UNKNOWN"
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFrom returns the identity stored by WithIdentity. A missing
// identity resolves to the PUBLIC role.
func identityFrom(ctx context.Context) entities.Identity {
	if id, ok := ctx.Value(identityKey).(entities.Identity); ok {
		return id
	}
	return entities.Identity{User: "UNKNOWN", Role: entities.NormalizeRole("")}
}

// requirePage wraps a handler with the page access check. The decision
// is resolved, audited, and counted; a denial short-circuits with 403.
func (h *Handler) requirePage(page string, level entities.AccessLevel, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := identityFrom(r.Context())

		decision, err := h.guard.RequirePage(r.Context(), id, page, level)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve page access")
			return
		}

		h.collector.RecordAccessDecision(decision.Allowed)
		if h.exporter != nil {
			h.exporter.RecordAccessDecision(decision.Allowed)
		}

		if !decision.Allowed {
			writeJSON(w, http.StatusForbidden, errorResponse{
				Error:  "access denied",
				Reason: decision.Reason,
			})
			return
		}

		next(w, r)
	}
}
