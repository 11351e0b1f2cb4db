package cache

import (
	"context"
	"log"
	"time"

	"github.com/kanamori/govport/internal/repositories"
	"github.com/kanamori/govport/pkg/cache"
)

// LookupCache is a read-through cache over the lookup lists that feed
// filter widgets. Slow-moving lists (systems, classifications, control
// types, risk categories) keep a longer TTL than the rest.
type LookupCache struct {
	repo    repositories.LookupRepository
	cache   cache.Cache
	ttl     time.Duration
	slowTTL time.Duration
}

var slowKinds = map[repositories.LookupKind]bool{
	repositories.LookupSystems:         true,
	repositories.LookupClassifications: true,
	repositories.LookupControlTypes:    true,
	repositories.LookupRiskCategories:  true,
}

// NewLookupCache wraps repo with a cache. ttl applies to fast-moving
// kinds, slowTTL to the slow ones.
func NewLookupCache(repo repositories.LookupRepository, c cache.Cache, ttl, slowTTL time.Duration) *LookupCache {
	return &LookupCache{repo: repo, cache: c, ttl: ttl, slowTTL: slowTTL}
}

// Lookup returns the cached list for kind, loading it from the
// warehouse on a miss. A failed load is logged and surfaces as an empty
// list so filter widgets degrade instead of erroring.
func (c *LookupCache) Lookup(ctx context.Context, kind repositories.LookupKind) ([]string, error) {
	key := "lookup:" + string(kind)

	if c.cache != nil {
		if v, found := c.cache.Get(ctx, key); found {
			if values, ok := v.([]string); ok {
				return values, nil
			}
		}
	}

	values, err := c.repo.Lookup(ctx, kind)
	if err != nil {
		log.Printf("Query execution error: %v", err)
		return []string{}, nil
	}

	if c.cache != nil {
		ttl := c.ttl
		if slowKinds[kind] {
			ttl = c.slowTTL
		}
		_ = c.cache.Set(ctx, key, values, ttl)
	}

	return values, nil
}
