package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kanamori/govport/internal/repositories"
)

// lookupQueries maps each lookup kind to its distinct-value query.
var lookupQueries = map[repositories.LookupKind]string{
	repositories.LookupDomains:         `SELECT DISTINCT domain_name FROM gov_platform.dim_domain ORDER BY domain_name`,
	repositories.LookupProcesses:       `SELECT DISTINCT name FROM gov_platform.process ORDER BY name`,
	repositories.LookupSystems:         `SELECT DISTINCT system_name FROM gov_platform.dim_system ORDER BY system_name`,
	repositories.LookupClassifications: `SELECT DISTINCT class_name FROM gov_platform.classification ORDER BY class_name`,
	repositories.LookupRuleTypes:       `SELECT DISTINCT rule_type FROM gov_platform.dq_rule ORDER BY rule_type`,
	repositories.LookupControlTypes:    `SELECT DISTINCT control_type FROM gov_platform.control_registry ORDER BY control_type`,
	repositories.LookupRiskCategories:  `SELECT DISTINCT category FROM gov_platform.risk_item ORDER BY category`,
}

// PostgresLookupRepository implements LookupRepository against the
// gov_platform catalog tables.
type PostgresLookupRepository struct {
	db *sql.DB
}

// NewPostgresLookupRepository creates a new PostgreSQL lookup repository.
func NewPostgresLookupRepository(db *sql.DB) repositories.LookupRepository {
	return &PostgresLookupRepository{db: db}
}

// Lookup returns the sorted distinct values for a lookup kind.
func (r *PostgresLookupRepository) Lookup(ctx context.Context, kind repositories.LookupKind) ([]string, error) {
	query, ok := lookupQueries[kind]
	if !ok {
		return nil, fmt.Errorf("unknown lookup kind: %s", kind)
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s lookup: %w", kind, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s lookup: %w", kind, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s lookup: %w", kind, err)
	}
	return values, nil
}
