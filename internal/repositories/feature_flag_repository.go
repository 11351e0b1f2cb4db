package repositories

import (
	"context"

	"github.com/kanamori/govport/internal/entities"
)

// FeatureFlagRepository reads per-role feature flags from the
// app_feature_flag table.
type FeatureFlagRepository interface {
	// FlagsForRole returns the flags visible to a role, keyed by flag
	// name. Flags with a NULL roles_allowed list apply to every role.
	FlagsForRole(ctx context.Context, role string) (map[string]entities.FeatureFlag, error)
}
