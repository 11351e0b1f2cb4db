package entities

import "time"

// Process outcomes as reported by the warehouse views.
const (
	OutcomePass = "PASS"
	OutcomeWarn = "WARN"
	OutcomeFail = "FAIL"
)

// Severity tiers used by DQ results and risk items.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
)

// HealthRun is one row of the vw_today_health view: a single process
// execution with its outcome and timing.
type HealthRun struct {
	RunID           string    `json:"run_id"`
	ProcessName     string    `json:"process_name"`
	DomainName      string    `json:"domain_name"`
	TargetTable     string    `json:"target_table"`
	Outcome         string    `json:"outcome"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes float64   `json:"duration_minutes"`
	Owners          string    `json:"owners,omitempty"`
}

// DQResult is one row of the vw_dq_results_enriched view.
type DQResult struct {
	ResultID     string    `json:"result_id"`
	RuleName     string    `json:"rule_name"`
	RuleType     string    `json:"rule_type"`
	DatasetName  string    `json:"dataset_name"`
	DomainName   string    `json:"domain_name"`
	Severity     string    `json:"severity"`
	Outcome      string    `json:"outcome"`
	FailedCount  int64     `json:"failed_count"`
	CheckedCount int64     `json:"checked_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ControlResult is one row of the vw_control_results_enriched view.
type ControlResult struct {
	ControlID   string    `json:"control_id"`
	ControlName string    `json:"control_name"`
	ControlType string    `json:"control_type"`
	DomainName  string    `json:"domain_name"`
	Outcome     string    `json:"outcome"`
	ExecutedAt  time.Time `json:"executed_at"`
	Details     string    `json:"details,omitempty"`
}

// DatasetOwner is one row of the vw_dataset_owners view.
type DatasetOwner struct {
	DomainName  string `json:"domain_name"`
	ObjectName  string `json:"object_name"`
	OwnerName   string `json:"owner_name"`
	OwnerEmail  string `json:"owner_email"`
	StewardName string `json:"steward_name,omitempty"`
}

// LineageEdge is one row of the vw_lineage_edges view.
type LineageEdge struct {
	EdgeID      string `json:"edge_id"`
	SrcFullName string `json:"src_full_name"`
	TgtFullName string `json:"tgt_full_name"`
	ProcessName string `json:"process_name,omitempty"`
	Active      bool   `json:"active"`
}

// LineageStep is one node in a recursive lineage walk. Path accumulates
// the chain of node names from the starting dataset.
type LineageStep struct {
	NodeID string `json:"node_id"`
	Level  int    `json:"level"`
	Path   string `json:"path"`
}

// DatasetLineage holds the upstream and downstream walks for a dataset.
type DatasetLineage struct {
	Upstream   []LineageStep `json:"upstream"`
	Downstream []LineageStep `json:"downstream"`
}

// GlossaryTerm is one row of the vw_business_glossary view.
type GlossaryTerm struct {
	TermName   string `json:"term_name"`
	Definition string `json:"definition"`
	DomainName string `json:"domain_name"`
	UsageCount int64  `json:"usage_count"`
}

// DataContract is one row of the vw_data_contracts view.
type DataContract struct {
	ContractID    string    `json:"contract_id"`
	DatasetName   string    `json:"dataset_name"`
	DomainName    string    `json:"domain_name"`
	Status        string    `json:"status"`
	SLAHours      float64   `json:"sla_hours"`
	EffectiveFrom time.Time `json:"effective_from"`
}

// RiskItem is one row of the vw_risk_dashboard view.
type RiskItem struct {
	RiskID     string `json:"risk_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Severity   string `json:"severity"`
	Likelihood string `json:"likelihood"`
	Status     string `json:"status"`
	DomainName string `json:"domain_name"`
}

// Dataset is a catalog entry returned by dataset search.
type Dataset struct {
	DatasetID      string    `json:"dataset_id"`
	DatabaseName   string    `json:"database_name"`
	SchemaName     string    `json:"schema_name"`
	ObjectName     string    `json:"object_name"`
	Description    string    `json:"description,omitempty"`
	Classification string    `json:"classification,omitempty"`
	Certification  string    `json:"certification,omitempty"`
	DomainName     string    `json:"domain_name"`
	CreatedAt      time.Time `json:"created_at"`
}
