package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kanamori/govport/internal/handlers"
	infcache "github.com/kanamori/govport/internal/infrastructure/cache"
	"github.com/kanamori/govport/internal/infrastructure/config"
	"github.com/kanamori/govport/internal/infrastructure/database"
	"github.com/kanamori/govport/internal/infrastructure/metrics"
	"github.com/kanamori/govport/internal/repositories/postgres"
	"github.com/kanamori/govport/internal/services/authz"
	"github.com/kanamori/govport/internal/services/dashboard"
	"github.com/kanamori/govport/pkg/cache/memorycache"
)

const defaultEnv = "dev"

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	if err := config.InitConfig(env); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	log.Printf("Connected to database: %s@%s:%d/%s",
		cfg.Database.User,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database)

	// Repositories
	ruleRepo := postgres.NewPostgresAccessRuleRepository(pg.DB)
	govRepo := postgres.NewPostgresGovernanceRepository(pg.DB)
	lookupRepo := postgres.NewPostgresLookupRepository(pg.DB)
	auditRepo := postgres.NewPostgresAuditRepository(pg.DB)
	telemetryRepo := postgres.NewPostgresTelemetryRepository(pg.DB)
	flagRepo := postgres.NewPostgresFeatureFlagRepository(pg.DB)

	// Caches and metrics
	collector := metrics.NewCollector()
	exporter := metrics.NewPrometheusExporter(collector)

	decisionTTL := time.Duration(cfg.Cache.DecisionTTLMinutes) * time.Minute
	lookupTTL := time.Duration(cfg.Cache.LookupTTLMinutes) * time.Minute
	slowLookupTTL := time.Duration(cfg.Cache.SlowLookupTTL) * time.Minute

	var resolver *authz.Resolver
	if cfg.Cache.Enabled {
		decisionCache := memorycache.New(&memorycache.Config{
			MaxEntries:    cfg.Cache.MaxEntries,
			EnableMetrics: cfg.Cache.Metrics,
		})
		defer decisionCache.Close()
		collector.SetCache(decisionCache)
		resolver = authz.NewResolverWithCache(ruleRepo, decisionCache, decisionTTL)

		// Invalidate cached decisions the moment rule tables change
		listener := infcache.NewRuleChangeListener(
			cfg.Database.ConnectionString(),
			"access_rules_changed",
			resolver.InvalidateCache,
		)
		if err := listener.Start(); err != nil {
			log.Printf("Rule change listener unavailable, relying on TTL: %v", err)
		} else {
			defer listener.Stop()
		}
	} else {
		resolver = authz.NewResolver(ruleRepo)
	}

	lookupCache := memorycache.New(&memorycache.Config{
		MaxEntries:    cfg.Cache.MaxEntries,
		EnableMetrics: cfg.Cache.Metrics,
	})
	defer lookupCache.Close()
	lookups := infcache.NewLookupCache(lookupRepo, lookupCache, lookupTTL, slowLookupTTL)

	// Services
	guard := authz.NewGuard(resolver, auditRepo, telemetryRepo)
	dash := dashboard.NewService(govRepo)

	handler := handlers.New(dash, guard, resolver, lookups, flagRepo, pg, collector, exporter)

	apiServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	// Periodic gauge refresh for cache hit rate and key count
	gaugeStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gaugeStop:
				return
			case <-ticker.C:
				exporter.Update()
			}
		}
	}()
	defer close(gaugeStop)

	serverErrors := make(chan error, 2)
	go func() {
		log.Printf("API server listening on %s", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("API server error: %w", err)
		}
	}()
	go func() {
		log.Printf("Metrics server listening on %s", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Initiating graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Metrics server shutdown error: %v", err)
		}

		if err := pg.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}

		log.Println("Shutdown complete")
	}
}
