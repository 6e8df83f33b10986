package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mrwolf/drmind/internal/config"
	"github.com/mrwolf/drmind/internal/export"
)

// NewRouter builds the chi mux with its middleware and every route
func NewRouter(cfg *config.Config, d Deps) (*chi.Mux, error) {
	handlers, err := NewHandlers(d)
	if err != nil {
		return nil, err
	}
	limiter := NewRateLimiter(cfg.Submit.RateLimit, cfg.Submit.RateWindow)
	if d.Clock != nil {
		limiter.clock = d.Clock
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	r.Get("/health", handlers.Health)

	// Web page
	r.Get("/", handlers.Index)
	r.With(RateLimitMiddleware(limiter)).Post("/", handlers.Submit)

	// Downloads
	r.Get("/export", handlers.Export(export.JSON))
	r.Get("/export/csv", handlers.Export(export.CSV))
	r.Get("/export/txt", handlers.Export(export.Text))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JSONContentType)

		r.With(RateLimitMiddleware(limiter)).Post("/entries", handlers.CreateEntry)
		r.Get("/entries", handlers.ListEntries)
		r.Get("/moods", handlers.Moods)
		r.Get("/stats", handlers.Stats)
	})

	return r, nil
}
