/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the mobile/web frontend

ROUTE GROUPS:
  /health                    Liveness probe
  /api/panchang/*            Month and day panchang views
  /api/festivals/*           Year overview and catalog administration

SECURITY NOTE:
  No authentication middleware. The festival admin endpoints are meant
  to sit behind a private network or gateway.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		// Panchang views
		r.Route("/panchang", func(r chi.Router) {
			r.Get("/day/{date}", h.GetDay)
			r.Get("/{year}/{month}", h.GetMonth)
		})

		// Festival overview and catalog administration
		r.Route("/festivals", func(r chi.Router) {
			r.Get("/", h.ListFestivals)
			r.Post("/", h.CreateFestival)
			r.Delete("/{id}", h.DeleteFestival)
			r.Get("/{year:[0-9]{4}}", h.GetYearFestivals)
		})
	})

	return r
}
