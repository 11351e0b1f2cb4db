package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
	"github.com/lib/pq"
)

// PostgresFeatureFlagRepository reads per-role flags from
// gov_app.app_feature_flag.
type PostgresFeatureFlagRepository struct {
	db *sql.DB
}

// NewPostgresFeatureFlagRepository creates a new PostgreSQL feature flag repository.
func NewPostgresFeatureFlagRepository(db *sql.DB) repositories.FeatureFlagRepository {
	return &PostgresFeatureFlagRepository{db: db}
}

// FlagsForRole returns the flags visible to a role, keyed by flag name.
// A NULL roles_allowed array means the flag applies to every role.
func (r *PostgresFeatureFlagRepository) FlagsForRole(ctx context.Context, role string) (map[string]entities.FeatureFlag, error) {
	query := `
		SELECT feature_name, enabled, config_json, roles_allowed
		FROM gov_app.app_feature_flag
		WHERE roles_allowed IS NULL OR $1 = ANY(roles_allowed)
	`
	rows, err := r.db.QueryContext(ctx, query, role)
	if isUndefinedTable(err) {
		return map[string]entities.FeatureFlag{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query feature flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]entities.FeatureFlag)
	for rows.Next() {
		var flag entities.FeatureFlag
		var configJSON sql.NullString
		var roles pq.StringArray
		if err := rows.Scan(&flag.Name, &flag.Enabled, &configJSON, &roles); err != nil {
			return nil, fmt.Errorf("failed to scan feature flag: %w", err)
		}
		if configJSON.Valid && configJSON.String != "" {
			if err := json.Unmarshal([]byte(configJSON.String), &flag.Config); err != nil {
				return nil, fmt.Errorf("invalid config for flag %s: %w", flag.Name, err)
			}
		}
		flag.RolesAllowed = roles
		flags[flag.Name] = flag
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feature flags: %w", err)
	}
	return flags, nil
}
