package repositories

import (
	"context"

	"github.com/kanamori/govport/internal/entities"
)

// DefaultResultLimit bounds result-set queries when the caller does not
// ask for a specific limit.
const DefaultResultLimit = 500

// HealthFilter narrows today's health rows. Empty fields match all rows.
type HealthFilter struct {
	Domain  string
	Process string
}

// DQFilter narrows data-quality results.
type DQFilter struct {
	Domain   string
	Severity string
	Outcome  string
	Limit    int
}

// ControlFilter narrows control test results.
type ControlFilter struct {
	ControlType string
	Outcome     string
	Limit       int
}

// LineageFilter narrows lineage edges. Node matches either endpoint by
// substring, case-insensitively.
type LineageFilter struct {
	Node       string
	ActiveOnly bool
}

// GlossaryFilter narrows business glossary terms. Search matches term
// name or definition by substring.
type GlossaryFilter struct {
	Search string
	Domain string
}

// ContractFilter narrows data contracts.
type ContractFilter struct {
	Status string
	Domain string
}

// RiskFilter narrows risk dashboard items.
type RiskFilter struct {
	Category string
	Severity string
}

// GovernanceRepository reads governance metrics from the warehouse views.
// Every method is a one-shot read owned by the requesting page render.
type GovernanceRepository interface {
	TodayHealth(ctx context.Context, f HealthFilter) ([]entities.HealthRun, error)
	DQResults(ctx context.Context, f DQFilter) ([]entities.DQResult, error)
	ControlResults(ctx context.Context, f ControlFilter) ([]entities.ControlResult, error)
	DatasetOwners(ctx context.Context, domain string) ([]entities.DatasetOwner, error)
	LineageEdges(ctx context.Context, f LineageFilter) ([]entities.LineageEdge, error)
	DatasetLineage(ctx context.Context, datasetID string, depth int) (*entities.DatasetLineage, error)
	BusinessGlossary(ctx context.Context, f GlossaryFilter) ([]entities.GlossaryTerm, error)
	DataContracts(ctx context.Context, f ContractFilter) ([]entities.DataContract, error)
	RiskItems(ctx context.Context, f RiskFilter) ([]entities.RiskItem, error)
	SearchDatasets(ctx context.Context, term string, limit int) ([]entities.Dataset, error)
}
