package repositories

import (
	"context"
	"errors"

	"github.com/kanamori/govport/internal/entities"
)

// ErrNoRuleStore indicates that the access rule tables do not exist at
// all (for example on a first deployment before migrations ran). The
// resolver treats this as default-allow, never as a failure.
var ErrNoRuleStore = errors.New("access rule store does not exist")

// AccessRuleRepository reads role/page and role/domain access rules from
// the configuration tables. Rules are read-only from this system's
// perspective.
type AccessRuleRepository interface {
	// GetPageRule returns the first rule matching (role, page), or
	// (nil, nil) when no rule matches. Returns ErrNoRuleStore when the
	// rule table is absent.
	GetPageRule(ctx context.Context, role, page string) (*entities.AccessRule, error)

	// GetDomainRule returns the first visibility rule matching
	// (role, domain), or (nil, nil) when no rule matches. Returns
	// ErrNoRuleStore when the table is absent.
	GetDomainRule(ctx context.Context, role, domain string) (*entities.DomainRule, error)

	// ListPageRules returns all page rules for a role.
	ListPageRules(ctx context.Context, role string) ([]*entities.AccessRule, error)

	// AccessibleDomains returns the domains a role may see (FULL or
	// LIMITED visibility), sorted by name.
	AccessibleDomains(ctx context.Context, role string) ([]string, error)
}
