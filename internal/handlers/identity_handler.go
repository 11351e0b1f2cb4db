package handlers

import (
	"log"
	"net/http"

	"github.com/kanamori/govport/internal/entities"
)

// meResponse describes the caller: who they are, which pages and
// domains they can see, and which features are on for their role.
type meResponse struct {
	User string `json:"user"`
	Role string `json:"role"`

	// Pages maps each dashboard page to the READ decision for it.
	Pages map[string]bool `json:"pages"`

	// AccessibleDomains is nil when the role has no domain restriction.
	AccessibleDomains []string `json:"accessible_domains"`

	Features map[string]entities.FeatureFlag `json:"features"`
}

// Me serves the caller's identity, page access map, accessible domains,
// and feature flags. The UI builds its navigation from this.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	resp := meResponse{
		User:  id.User,
		Role:  entities.NormalizeRole(id.Role),
		Pages: make(map[string]bool, len(entities.Pages())),
	}

	for _, page := range entities.Pages() {
		decision, err := h.resolver.Resolve(r.Context(), id.Role, page, entities.LevelRead)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve page access")
			return
		}
		resp.Pages[page] = decision.Allowed
	}

	domains, err := h.resolver.AccessibleDomains(r.Context(), id.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accessible domains")
		return
	}
	resp.AccessibleDomains = domains

	flags, err := h.flags.FlagsForRole(r.Context(), resp.Role)
	if err != nil {
		// Feature flags are best-effort; the UI falls back to defaults
		log.Printf("Failed to load feature flags: %v", err)
		flags = map[string]entities.FeatureFlag{}
	}
	resp.Features = flags

	writeJSON(w, http.StatusOK, resp)
}
