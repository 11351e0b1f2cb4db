package dashboard

import (
	"context"
	"log"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// Service turns warehouse rows into page payloads. It is the query
// boundary from the error-handling contract: warehouse failures are
// logged here and flattened into empty results, so pages cannot tell
// "no rows" from "query failed".
type Service struct {
	gov repositories.GovernanceRepository
}

// NewService creates a dashboard Service.
func NewService(gov repositories.GovernanceRepository) *Service {
	return &Service{gov: gov}
}

// HomeOverview is the full HOME page payload.
type HomeOverview struct {
	KPIs          KPISummary           `json:"kpis"`
	DomainChart   StackedBarChart      `json:"domain_chart"`
	DurationChart []BoxSummary         `json:"duration_chart"`
	OutcomeChart  PieChart             `json:"outcome_chart"`
	Rows          []entities.HealthRun `json:"rows"`
	FilterSummary string               `json:"filter_summary"`
}

// HomeOverview builds the HOME page from today's health rows, applying
// the in-memory row filter to the detail table only. Charts and KPIs
// always reflect the unfiltered warehouse result.
func (s *Service) HomeOverview(ctx context.Context, f repositories.HealthFilter, rf RowFilter) *HomeOverview {
	runs := s.TodayHealth(ctx, f)

	active := map[string]string{}
	if f.Domain != "" {
		active["domain"] = f.Domain
	}
	if f.Process != "" {
		active["process"] = f.Process
	}

	return &HomeOverview{
		KPIs:          Summarize(runs),
		DomainChart:   DomainOutcomeChart(runs),
		DurationChart: DurationByOutcome(runs),
		OutcomeChart:  OutcomeDistribution(healthOutcomes(runs)),
		Rows:          ApplyRowFilter(runs, rf),
		FilterSummary: FilterSummary(active),
	}
}

// TodayHealth returns today's health rows, or an empty slice on error.
func (s *Service) TodayHealth(ctx context.Context, f repositories.HealthFilter) []entities.HealthRun {
	runs, err := s.gov.TodayHealth(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.HealthRun{}
	}
	return runs
}

// DQResults returns enriched DQ results, or an empty slice on error.
func (s *Service) DQResults(ctx context.Context, f repositories.DQFilter) []entities.DQResult {
	results, err := s.gov.DQResults(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.DQResult{}
	}
	return results
}

// ControlResults returns control test results, or an empty slice on error.
func (s *Service) ControlResults(ctx context.Context, f repositories.ControlFilter) []entities.ControlResult {
	results, err := s.gov.ControlResults(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.ControlResult{}
	}
	return results
}

// DatasetOwners returns ownership rows, or an empty slice on error.
func (s *Service) DatasetOwners(ctx context.Context, domain string) []entities.DatasetOwner {
	owners, err := s.gov.DatasetOwners(ctx, domain)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.DatasetOwner{}
	}
	return owners
}

// LineageEdges returns lineage edges, or an empty slice on error.
func (s *Service) LineageEdges(ctx context.Context, f repositories.LineageFilter) []entities.LineageEdge {
	edges, err := s.gov.LineageEdges(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.LineageEdge{}
	}
	return edges
}

// DatasetLineage returns the upstream/downstream walks for a dataset, or
// an empty result on error.
func (s *Service) DatasetLineage(ctx context.Context, datasetID string, depth int) *entities.DatasetLineage {
	if depth <= 0 {
		depth = 3
	}
	lineage, err := s.gov.DatasetLineage(ctx, datasetID, depth)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return &entities.DatasetLineage{}
	}
	return lineage
}

// BusinessGlossary returns glossary terms, or an empty slice on error.
func (s *Service) BusinessGlossary(ctx context.Context, f repositories.GlossaryFilter) []entities.GlossaryTerm {
	terms, err := s.gov.BusinessGlossary(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.GlossaryTerm{}
	}
	return terms
}

// DataContracts returns data contracts, or an empty slice on error.
func (s *Service) DataContracts(ctx context.Context, f repositories.ContractFilter) []entities.DataContract {
	contracts, err := s.gov.DataContracts(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.DataContract{}
	}
	return contracts
}

// RiskItems returns risk dashboard rows, or an empty slice on error.
func (s *Service) RiskItems(ctx context.Context, f repositories.RiskFilter) []entities.RiskItem {
	items, err := s.gov.RiskItems(ctx, f)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.RiskItem{}
	}
	return items
}

// SearchDatasets returns catalog matches, or an empty slice on error.
func (s *Service) SearchDatasets(ctx context.Context, term string, limit int) []entities.Dataset {
	datasets, err := s.gov.SearchDatasets(ctx, term, limit)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []entities.Dataset{}
	}
	return datasets
}

func healthOutcomes(runs []entities.HealthRun) []string {
	outcomes := make([]string, len(runs))
	for i, run := range runs {
		outcomes[i] = run.Outcome
	}
	return outcomes
}
