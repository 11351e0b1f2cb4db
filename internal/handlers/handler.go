package handlers

import (
	"github.com/kanamori/govport/internal/infrastructure/cache"
	"github.com/kanamori/govport/internal/infrastructure/database"
	"github.com/kanamori/govport/internal/infrastructure/metrics"
	"github.com/kanamori/govport/internal/repositories"
	"github.com/kanamori/govport/internal/services/authz"
	"github.com/kanamori/govport/internal/services/dashboard"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	dashboard *dashboard.Service
	guard     *authz.Guard
	resolver  *authz.Resolver
	lookups   *cache.LookupCache
	flags     repositories.FeatureFlagRepository
	db        *database.Postgres
	collector *metrics.Collector
	exporter  *metrics.PrometheusExporter
}

// New creates a Handler. exporter may be nil when Prometheus export is
// disabled (tests).
func New(
	dash *dashboard.Service,
	guard *authz.Guard,
	resolver *authz.Resolver,
	lookups *cache.LookupCache,
	flags repositories.FeatureFlagRepository,
	db *database.Postgres,
	collector *metrics.Collector,
	exporter *metrics.PrometheusExporter,
) *Handler {
	return &Handler{
		dashboard: dash,
		guard:     guard,
		resolver:  resolver,
		lookups:   lookups,
		flags:     flags,
		db:        db,
		collector: collector,
		exporter:  exporter,
	}
}
