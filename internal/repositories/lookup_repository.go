package repositories

import "context"

// LookupKind identifies one cached lookup list.
type LookupKind string

const (
	LookupDomains         LookupKind = "domains"
	LookupProcesses       LookupKind = "processes"
	LookupSystems         LookupKind = "systems"
	LookupClassifications LookupKind = "classifications"
	LookupRuleTypes       LookupKind = "rule_types"
	LookupControlTypes    LookupKind = "control_types"
	LookupRiskCategories  LookupKind = "risk_categories"
)

// LookupRepository reads the distinct-value lists that feed filter
// widgets. All lists come back sorted.
type LookupRepository interface {
	Lookup(ctx context.Context, kind LookupKind) ([]string, error)
}
