package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
	"github.com/kanamori/govport/pkg/cache"
)

// Reasons attached to access decisions. The audit log records these
// verbatim, so they are part of the contract.
const (
	ReasonNoRuleStore    = "default_allow: no rule store"
	ReasonNoMatchingRule = "default_allow: no matching rule"
)

// ResolverInterface defines the interface for access resolution.
type ResolverInterface interface {
	Resolve(ctx context.Context, role, page string, required entities.AccessLevel) (*entities.AccessDecision, error)
	ResolveDomain(ctx context.Context, role, domain string) (*entities.AccessDecision, error)
}

// Resolver decides whether a role may see a page or domain. Resolution is
// deterministic and side-effect free; audit logging is the caller's job.
//
// The system defaults open: a missing rule store or a missing rule both
// resolve to allow.
type Resolver struct {
	rules    repositories.AccessRuleRepository
	cache    cache.Cache // optional decision cache
	cacheTTL time.Duration
}

// NewResolver creates a Resolver without decision caching.
func NewResolver(rules repositories.AccessRuleRepository) *Resolver {
	return &Resolver{rules: rules}
}

// NewResolverWithCache creates a Resolver that caches decisions for ttl.
// Entries are additionally invalidated by the rule-change listener.
func NewResolverWithCache(rules repositories.AccessRuleRepository, c cache.Cache, ttl time.Duration) *Resolver {
	return &Resolver{rules: rules, cache: c, cacheTTL: ttl}
}

// Resolve decides whether role may access page at the required level.
//
// The rule's level and the required level are ranked READ=1, WRITE=2,
// ADMIN=3; an unrecognized level ranks 0 and is denied against any
// recognized required level.
func (r *Resolver) Resolve(ctx context.Context, role, page string, required entities.AccessLevel) (*entities.AccessDecision, error) {
	role = entities.NormalizeRole(role)
	page = entities.NormalizeScope(page)
	if required == "" {
		required = entities.LevelRead
	}

	cacheKey := fmt.Sprintf("page:%s:%s:%s", role, page, required)
	if decision, ok := r.cached(ctx, cacheKey); ok {
		return decision, nil
	}

	rule, err := r.rules.GetPageRule(ctx, role, page)
	if errors.Is(err, repositories.ErrNoRuleStore) {
		return r.store(ctx, cacheKey, &entities.AccessDecision{Allowed: true, Reason: ReasonNoRuleStore}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page access: %w", err)
	}
	if rule == nil {
		return r.store(ctx, cacheKey, &entities.AccessDecision{Allowed: true, Reason: ReasonNoMatchingRule}), nil
	}

	decision := &entities.AccessDecision{
		Allowed: rule.Level.Rank() >= required.Rank(),
		Reason:  fmt.Sprintf("rule=%s", rule.Level),
	}
	return r.store(ctx, cacheKey, decision), nil
}

// ResolveDomain decides whether role may see a business domain. Explicit
// FULL or LIMITED visibility allows; an explicit NONE (or anything else)
// denies; no store or no rule defaults open like page resolution.
func (r *Resolver) ResolveDomain(ctx context.Context, role, domain string) (*entities.AccessDecision, error) {
	role = entities.NormalizeRole(role)
	domain = entities.NormalizeScope(domain)

	cacheKey := fmt.Sprintf("domain:%s:%s", role, domain)
	if decision, ok := r.cached(ctx, cacheKey); ok {
		return decision, nil
	}

	rule, err := r.rules.GetDomainRule(ctx, role, domain)
	if errors.Is(err, repositories.ErrNoRuleStore) {
		return r.store(ctx, cacheKey, &entities.AccessDecision{Allowed: true, Reason: ReasonNoRuleStore}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve domain access: %w", err)
	}
	if rule == nil {
		return r.store(ctx, cacheKey, &entities.AccessDecision{Allowed: true, Reason: ReasonNoMatchingRule}), nil
	}

	allowed := rule.AccessType == entities.VisibilityFull || rule.AccessType == entities.VisibilityLimited
	decision := &entities.AccessDecision{
		Allowed: allowed,
		Reason:  fmt.Sprintf("visibility=%s", rule.AccessType),
	}
	return r.store(ctx, cacheKey, decision), nil
}

// AccessibleDomains returns the domains a role may see. An absent rule
// store means every domain is visible, reported as a nil list the caller
// treats as "no restriction".
func (r *Resolver) AccessibleDomains(ctx context.Context, role string) ([]string, error) {
	role = entities.NormalizeRole(role)
	domains, err := r.rules.AccessibleDomains(ctx, role)
	if errors.Is(err, repositories.ErrNoRuleStore) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accessible domains: %w", err)
	}
	return domains, nil
}

// InvalidateCache drops all cached decisions. Called by the rule-change
// listener when the configuration tables change.
func (r *Resolver) InvalidateCache(ctx context.Context) {
	if r.cache != nil {
		_ = r.cache.Clear(ctx)
	}
}

func (r *Resolver) cached(ctx context.Context, key string) (*entities.AccessDecision, bool) {
	if r.cache == nil {
		return nil, false
	}
	v, found := r.cache.Get(ctx, key)
	if !found {
		return nil, false
	}
	decision, ok := v.(*entities.AccessDecision)
	return decision, ok
}

func (r *Resolver) store(ctx context.Context, key string, decision *entities.AccessDecision) *entities.AccessDecision {
	if r.cache != nil {
		_ = r.cache.Set(ctx, key, decision, r.cacheTTL)
	}
	return decision
}
