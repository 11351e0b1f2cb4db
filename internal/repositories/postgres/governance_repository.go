package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// PostgresGovernanceRepository implements GovernanceRepository against the
// gov_app warehouse views. View definitions live in the warehouse; this
// code only reads them. All filtering uses real parameter binding.
type PostgresGovernanceRepository struct {
	db *sql.DB
}

// NewPostgresGovernanceRepository creates a new PostgreSQL governance repository.
func NewPostgresGovernanceRepository(db *sql.DB) repositories.GovernanceRepository {
	return &PostgresGovernanceRepository{db: db}
}

// cond accumulates WHERE predicates with positional placeholders.
type cond struct {
	clauses string
	args    []interface{}
}

func (c *cond) eq(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.clauses += fmt.Sprintf(" AND %s = $%d", column, len(c.args))
}

func (c *cond) arg(v interface{}) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

// TodayHealth returns today's process health rows, newest first.
func (r *PostgresGovernanceRepository) TodayHealth(ctx context.Context, f repositories.HealthFilter) ([]entities.HealthRun, error) {
	c := &cond{}
	c.eq("domain_name", f.Domain)
	c.eq("process_name", f.Process)

	query := `
		SELECT run_id, process_name, COALESCE(domain_name, ''), COALESCE(target_table, ''),
		       outcome, started_at, COALESCE(duration_minutes, 0), COALESCE(owners, '')
		FROM gov_app.vw_today_health
		WHERE 1=1` + c.clauses + `
		ORDER BY started_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query today health: %w", err)
	}
	defer rows.Close()

	var runs []entities.HealthRun
	for rows.Next() {
		var run entities.HealthRun
		if err := rows.Scan(&run.RunID, &run.ProcessName, &run.DomainName, &run.TargetTable,
			&run.Outcome, &run.StartedAt, &run.DurationMinutes, &run.Owners); err != nil {
			return nil, fmt.Errorf("failed to scan health run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health runs: %w", err)
	}
	return runs, nil
}

// DQResults returns enriched data-quality results, newest first.
func (r *PostgresGovernanceRepository) DQResults(ctx context.Context, f repositories.DQFilter) ([]entities.DQResult, error) {
	if f.Limit <= 0 {
		f.Limit = repositories.DefaultResultLimit
	}

	c := &cond{}
	c.eq("domain_name", f.Domain)
	c.eq("severity", f.Severity)
	c.eq("outcome", f.Outcome)

	query := `
		SELECT result_id, rule_name, rule_type, dataset_name, COALESCE(domain_name, ''),
		       severity, outcome, failed_count, checked_count, created_at
		FROM gov_app.vw_dq_results_enriched
		WHERE 1=1` + c.clauses + `
		ORDER BY created_at DESC
		LIMIT ` + c.arg(f.Limit)

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dq results: %w", err)
	}
	defer rows.Close()

	var results []entities.DQResult
	for rows.Next() {
		var res entities.DQResult
		if err := rows.Scan(&res.ResultID, &res.RuleName, &res.RuleType, &res.DatasetName,
			&res.DomainName, &res.Severity, &res.Outcome, &res.FailedCount,
			&res.CheckedCount, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dq result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dq results: %w", err)
	}
	return results, nil
}

// ControlResults returns control test results, newest first.
func (r *PostgresGovernanceRepository) ControlResults(ctx context.Context, f repositories.ControlFilter) ([]entities.ControlResult, error) {
	if f.Limit <= 0 {
		f.Limit = repositories.DefaultResultLimit
	}

	c := &cond{}
	c.eq("control_type", f.ControlType)
	c.eq("outcome", f.Outcome)

	query := `
		SELECT control_id, control_name, control_type, COALESCE(domain_name, ''),
		       outcome, executed_at, COALESCE(details, '')
		FROM gov_app.vw_control_results_enriched
		WHERE 1=1` + c.clauses + `
		ORDER BY executed_at DESC
		LIMIT ` + c.arg(f.Limit)

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query control results: %w", err)
	}
	defer rows.Close()

	var results []entities.ControlResult
	for rows.Next() {
		var res entities.ControlResult
		if err := rows.Scan(&res.ControlID, &res.ControlName, &res.ControlType,
			&res.DomainName, &res.Outcome, &res.ExecutedAt, &res.Details); err != nil {
			return nil, fmt.Errorf("failed to scan control result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate control results: %w", err)
	}
	return results, nil
}

// DatasetOwners returns ownership rows ordered by domain and object name.
func (r *PostgresGovernanceRepository) DatasetOwners(ctx context.Context, domain string) ([]entities.DatasetOwner, error) {
	c := &cond{}
	c.eq("domain_name", domain)

	query := `
		SELECT COALESCE(domain_name, ''), object_name, owner_name,
		       COALESCE(owner_email, ''), COALESCE(steward_name, '')
		FROM gov_app.vw_dataset_owners
		WHERE 1=1` + c.clauses + `
		ORDER BY domain_name, object_name
	`
	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset owners: %w", err)
	}
	defer rows.Close()

	var owners []entities.DatasetOwner
	for rows.Next() {
		var o entities.DatasetOwner
		if err := rows.Scan(&o.DomainName, &o.ObjectName, &o.OwnerName, &o.OwnerEmail, &o.StewardName); err != nil {
			return nil, fmt.Errorf("failed to scan dataset owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dataset owners: %w", err)
	}
	return owners, nil
}

// LineageEdges returns lineage edges, optionally narrowed to edges
// touching a node name by substring match on either endpoint.
func (r *PostgresGovernanceRepository) LineageEdges(ctx context.Context, f repositories.LineageFilter) ([]entities.LineageEdge, error) {
	c := &cond{}
	if f.ActiveOnly {
		c.clauses += " AND active_flag = TRUE"
	}
	if f.Node != "" {
		p := c.arg("%" + f.Node + "%")
		c.clauses += fmt.Sprintf(" AND (src_full_name ILIKE %s OR tgt_full_name ILIKE %s)", p, p)
	}

	query := `
		SELECT edge_id, src_full_name, tgt_full_name, COALESCE(process_name, ''), active_flag
		FROM gov_app.vw_lineage_edges
		WHERE 1=1` + c.clauses

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lineage edges: %w", err)
	}
	defer rows.Close()

	var edges []entities.LineageEdge
	for rows.Next() {
		var e entities.LineageEdge
		if err := rows.Scan(&e.EdgeID, &e.SrcFullName, &e.TgtFullName, &e.ProcessName, &e.Active); err != nil {
			return nil, fmt.Errorf("failed to scan lineage edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lineage edges: %w", err)
	}
	return edges, nil
}

const upstreamLineageQuery = `
	WITH RECURSIVE lineage_cte (node_id, level, path) AS (
		SELECT ln.node_id, 0, ln.name
		FROM gov_platform.lineage_node ln
		WHERE ln.ref_id = $1 AND ln.node_type = 'DATASET'

		UNION ALL

		SELECT le.src_node_id, lc.level + 1, lc.path || ' <- ' || ln.name
		FROM lineage_cte lc
		JOIN gov_platform.lineage_edge le ON le.tgt_node_id = lc.node_id
		JOIN gov_platform.lineage_node ln ON ln.node_id = le.src_node_id
		WHERE lc.level < $2
	)
	SELECT node_id, level, path FROM lineage_cte WHERE level > 0 ORDER BY level, path
`

const downstreamLineageQuery = `
	WITH RECURSIVE lineage_cte (node_id, level, path) AS (
		SELECT ln.node_id, 0, ln.name
		FROM gov_platform.lineage_node ln
		WHERE ln.ref_id = $1 AND ln.node_type = 'DATASET'

		UNION ALL

		SELECT le.tgt_node_id, lc.level + 1, lc.path || ' -> ' || ln.name
		FROM lineage_cte lc
		JOIN gov_platform.lineage_edge le ON le.src_node_id = lc.node_id
		JOIN gov_platform.lineage_node ln ON ln.node_id = le.tgt_node_id
		WHERE lc.level < $2
	)
	SELECT node_id, level, path FROM lineage_cte WHERE level > 0 ORDER BY level, path
`

// DatasetLineage walks the lineage graph in both directions from a
// dataset node, bounded by depth.
func (r *PostgresGovernanceRepository) DatasetLineage(ctx context.Context, datasetID string, depth int) (*entities.DatasetLineage, error) {
	upstream, err := r.lineageWalk(ctx, upstreamLineageQuery, datasetID, depth)
	if err != nil {
		return nil, fmt.Errorf("failed to walk upstream lineage: %w", err)
	}
	downstream, err := r.lineageWalk(ctx, downstreamLineageQuery, datasetID, depth)
	if err != nil {
		return nil, fmt.Errorf("failed to walk downstream lineage: %w", err)
	}
	return &entities.DatasetLineage{Upstream: upstream, Downstream: downstream}, nil
}

func (r *PostgresGovernanceRepository) lineageWalk(ctx context.Context, query, datasetID string, depth int) ([]entities.LineageStep, error) {
	rows, err := r.db.QueryContext(ctx, query, datasetID, depth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []entities.LineageStep
	for rows.Next() {
		var s entities.LineageStep
		if err := rows.Scan(&s.NodeID, &s.Level, &s.Path); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// BusinessGlossary returns glossary terms ordered by name.
func (r *PostgresGovernanceRepository) BusinessGlossary(ctx context.Context, f repositories.GlossaryFilter) ([]entities.GlossaryTerm, error) {
	c := &cond{}
	if f.Search != "" {
		p := c.arg("%" + f.Search + "%")
		c.clauses += fmt.Sprintf(" AND (term_name ILIKE %s OR definition ILIKE %s)", p, p)
	}
	c.eq("domain_name", f.Domain)

	query := `
		SELECT term_name, COALESCE(definition, ''), COALESCE(domain_name, ''), COALESCE(usage_count, 0)
		FROM gov_app.vw_business_glossary
		WHERE 1=1` + c.clauses + `
		ORDER BY term_name
	`
	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query business glossary: %w", err)
	}
	defer rows.Close()

	var terms []entities.GlossaryTerm
	for rows.Next() {
		var t entities.GlossaryTerm
		if err := rows.Scan(&t.TermName, &t.Definition, &t.DomainName, &t.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan glossary term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate glossary terms: %w", err)
	}
	return terms, nil
}

// DataContracts returns contracts ordered by effective date, newest first.
func (r *PostgresGovernanceRepository) DataContracts(ctx context.Context, f repositories.ContractFilter) ([]entities.DataContract, error) {
	c := &cond{}
	c.eq("status", f.Status)
	c.eq("domain_name", f.Domain)

	query := `
		SELECT contract_id, dataset_name, COALESCE(domain_name, ''), status,
		       COALESCE(sla_hours, 0), effective_from
		FROM gov_app.vw_data_contracts
		WHERE 1=1` + c.clauses + `
		ORDER BY effective_from DESC
	`
	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query data contracts: %w", err)
	}
	defer rows.Close()

	var contracts []entities.DataContract
	for rows.Next() {
		var dc entities.DataContract
		if err := rows.Scan(&dc.ContractID, &dc.DatasetName, &dc.DomainName, &dc.Status,
			&dc.SLAHours, &dc.EffectiveFrom); err != nil {
			return nil, fmt.Errorf("failed to scan data contract: %w", err)
		}
		contracts = append(contracts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate data contracts: %w", err)
	}
	return contracts, nil
}

// RiskItems returns risk dashboard rows, most severe first.
func (r *PostgresGovernanceRepository) RiskItems(ctx context.Context, f repositories.RiskFilter) ([]entities.RiskItem, error) {
	c := &cond{}
	c.eq("category", f.Category)
	c.eq("severity", f.Severity)

	query := `
		SELECT risk_id, title, category, severity, COALESCE(likelihood, ''),
		       COALESCE(status, ''), COALESCE(domain_name, '')
		FROM gov_app.vw_risk_dashboard
		WHERE 1=1` + c.clauses + `
		ORDER BY severity DESC, likelihood DESC
	`
	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk items: %w", err)
	}
	defer rows.Close()

	var items []entities.RiskItem
	for rows.Next() {
		var ri entities.RiskItem
		if err := rows.Scan(&ri.RiskID, &ri.Title, &ri.Category, &ri.Severity,
			&ri.Likelihood, &ri.Status, &ri.DomainName); err != nil {
			return nil, fmt.Errorf("failed to scan risk item: %w", err)
		}
		items = append(items, ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate risk items: %w", err)
	}
	return items, nil
}

// SearchDatasets searches the catalog by object name, description, or
// domain name.
func (r *PostgresGovernanceRepository) SearchDatasets(ctx context.Context, term string, limit int) ([]entities.Dataset, error) {
	if limit <= 0 {
		limit = 100
	}
	pattern := "%" + term + "%"

	query := `
		SELECT ds.dataset_id, ds.database_name, ds.schema_name, ds.object_name,
		       COALESCE(ds.description, ''), COALESCE(ds.classification, ''),
		       COALESCE(ds.certification, ''), COALESCE(d.domain_name, ''), ds.created_at
		FROM gov_platform.dim_dataset ds
		LEFT JOIN gov_platform.dim_domain d ON d.domain_id = ds.domain_id
		WHERE ds.object_name ILIKE $1
		   OR ds.description ILIKE $1
		   OR d.domain_name ILIKE $1
		ORDER BY ds.object_name
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search datasets: %w", err)
	}
	defer rows.Close()

	var datasets []entities.Dataset
	for rows.Next() {
		var ds entities.Dataset
		if err := rows.Scan(&ds.DatasetID, &ds.DatabaseName, &ds.SchemaName, &ds.ObjectName,
			&ds.Description, &ds.Classification, &ds.Certification, &ds.DomainName, &ds.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate datasets: %w", err)
	}
	return datasets, nil
}
