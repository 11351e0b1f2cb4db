package handlers

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/infrastructure/metrics"
)

// Routes builds the API router. Every page endpoint sits behind the
// identity middleware and its page guard; lookups, search, and /me only
// need an identity.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware(h.collector, h.exporter))

	r.Get("/healthz", h.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(WithIdentity)

		r.Get("/home", h.requirePage(entities.PageHome, entities.LevelRead, h.Home))
		r.Get("/home/export", h.requirePage(entities.PageHome, entities.LevelRead, h.HomeExport))

		r.Get("/dq/results", h.requirePage(entities.PageDQExplorer, entities.LevelRead, h.DQResults))
		r.Get("/controls/results", h.requirePage(entities.PageDQExplorer, entities.LevelRead, h.ControlResults))

		r.Get("/lineage/edges", h.requirePage(entities.PageLineage, entities.LevelRead, h.LineageEdges))
		r.Get("/lineage/datasets/{id}", h.requirePage(entities.PageLineage, entities.LevelRead, h.DatasetLineage))

		r.Get("/ownership", h.requirePage(entities.PageOwnership, entities.LevelRead, h.Ownership))
		r.Get("/glossary", h.requirePage(entities.PageGlossary, entities.LevelRead, h.Glossary))
		r.Get("/contracts", h.requirePage(entities.PageContracts, entities.LevelRead, h.Contracts))
		r.Get("/risk", h.requirePage(entities.PageRisk, entities.LevelRead, h.Risk))

		r.Get("/datasets/search", h.SearchDatasets)
		r.Get("/lookups/{kind}", h.Lookup)
		r.Get("/me", h.Me)
	})

	return r
}
