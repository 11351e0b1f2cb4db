package entities

// TelemetryEvent is an append-only usage event, distinct from the access
// audit log. Writes are fire-and-forget: a failed insert must never fail
// the page request that produced it.
type TelemetryEvent struct {
	SessionID    string
	UserName     string
	RoleName     string
	PageName     string
	Action       string
	DurationMS   int64
	QueryCount   int
	ErrorMessage string
}

// FeatureFlag is a per-role feature toggle from the app_feature_flag
// table. A nil RolesAllowed list means the flag applies to every role.
type FeatureFlag struct {
	Name         string                 `json:"name"`
	Enabled      bool                   `json:"enabled"`
	Config       map[string]interface{} `json:"config,omitempty"`
	RolesAllowed []string               `json:"-"`
}
