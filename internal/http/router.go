package httpx

import (
	"net/http"

	"schooldb/internal/config"
	"schooldb/internal/http/handlers"
	middlewarex "schooldb/internal/http/middleware"
	"schooldb/internal/services/filters"
	"schooldb/internal/services/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config   config.Cfg
	Sessions *session.Registry
	Filters  *filters.Service
}

// NewRouter exposes list sessions and filter dictionaries to a UI
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", handlers.Health(deps.Config, deps.Sessions))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", handlers.CreateSession(deps.Sessions))

		r.Route("/{id}", func(r chi.Router) {
			r.Use(middlewarex.SessionLookup(deps.Sessions))

			r.Get("/", handlers.GetSession())
			r.Delete("/", handlers.DiscardSession(deps.Sessions))
			r.Post("/load", handlers.LoadPage())
			r.Post("/clear-error", handlers.ClearError())
		})
	})

	// Filter dictionaries
	r.Get("/regions", handlers.ListRegions(deps.Filters))
	r.Get("/federal-districts", handlers.ListFederalDistricts(deps.Filters))
	r.Get("/filters", handlers.ListFilters(deps.Filters))

	return r
}
