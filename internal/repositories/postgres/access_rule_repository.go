package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// PostgresAccessRuleRepository implements AccessRuleRepository against the
// gov_app configuration tables.
type PostgresAccessRuleRepository struct {
	db *sql.DB
}

// NewPostgresAccessRuleRepository creates a new PostgreSQL access rule repository.
func NewPostgresAccessRuleRepository(db *sql.DB) repositories.AccessRuleRepository {
	return &PostgresAccessRuleRepository{db: db}
}

// GetPageRule returns the first rule matching (role, page). Lookup order
// is fixed so duplicate rules resolve deterministically.
func (r *PostgresAccessRuleRepository) GetPageRule(ctx context.Context, role, page string) (*entities.AccessRule, error) {
	query := `
		SELECT role_name, page_name, access_level
		FROM gov_app.role_page_access
		WHERE role_name = $1 AND page_name = $2
		ORDER BY created_at
		LIMIT 1
	`
	rule := &entities.AccessRule{}
	var level string
	err := r.db.QueryRowContext(ctx, query, role, page).Scan(&rule.Role, &rule.Page, &level)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUndefinedTable(err) {
		return nil, repositories.ErrNoRuleStore
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page rule: %w", err)
	}
	rule.Level = entities.AccessLevel(level)
	return rule, nil
}

// GetDomainRule returns the first visibility rule matching (role, domain).
func (r *PostgresAccessRuleRepository) GetDomainRule(ctx context.Context, role, domain string) (*entities.DomainRule, error) {
	query := `
		SELECT role_name, domain_name, access_type, COALESCE(restrictions, '')
		FROM gov_app.domain_visibility
		WHERE role_name = $1 AND domain_name = $2
		ORDER BY created_at
		LIMIT 1
	`
	rule := &entities.DomainRule{}
	err := r.db.QueryRowContext(ctx, query, role, domain).Scan(
		&rule.Role, &rule.Domain, &rule.AccessType, &rule.Restrictions)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUndefinedTable(err) {
		return nil, repositories.ErrNoRuleStore
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get domain rule: %w", err)
	}
	return rule, nil
}

// ListPageRules returns all page rules for a role.
func (r *PostgresAccessRuleRepository) ListPageRules(ctx context.Context, role string) ([]*entities.AccessRule, error) {
	query := `
		SELECT role_name, page_name, access_level
		FROM gov_app.role_page_access
		WHERE role_name = $1
		ORDER BY page_name
	`
	rows, err := r.db.QueryContext(ctx, query, role)
	if isUndefinedTable(err) {
		return nil, repositories.ErrNoRuleStore
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list page rules: %w", err)
	}
	defer rows.Close()

	var rules []*entities.AccessRule
	for rows.Next() {
		rule := &entities.AccessRule{}
		var level string
		if err := rows.Scan(&rule.Role, &rule.Page, &level); err != nil {
			return nil, fmt.Errorf("failed to scan page rule: %w", err)
		}
		rule.Level = entities.AccessLevel(level)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate page rules: %w", err)
	}
	return rules, nil
}

// AccessibleDomains returns the domains a role may see.
func (r *PostgresAccessRuleRepository) AccessibleDomains(ctx context.Context, role string) ([]string, error) {
	query := `
		SELECT domain_name
		FROM gov_app.domain_visibility
		WHERE role_name = $1 AND access_type IN ($2, $3)
		ORDER BY domain_name
	`
	rows, err := r.db.QueryContext(ctx, query, role, entities.VisibilityFull, entities.VisibilityLimited)
	if isUndefinedTable(err) {
		return nil, repositories.ErrNoRuleStore
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accessible domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domains: %w", err)
	}
	return domains, nil
}
