// Package api exposes the benefit calculators over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures the optional parts of the router.
type RouterOptions struct {
	// AllowedOrigins for CORS. Empty allows any origin without credentials.
	AllowedOrigins []string
	// RequestLogging enables chi's request logger.
	RequestLogging bool
	Metrics        bool
}

// DefaultRouterOptions returns the options used by `mawc serve`.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		RequestLogging: true,
		Metrics:        true,
	}
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	if opts.RequestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(30 * time.Second))
	if opts.Metrics {
		r.Use(instrument)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: len(opts.AllowedOrigins) > 0,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/rate-table", func(r chi.Router) {
			r.Get("/", h.GetRateTable)
			r.Get("/lookup", h.LookupRate)
		})

		r.Post("/rates", h.CalculateRates)
		r.Get("/weeks", h.Weeks)
		r.Post("/claims/evaluate", h.EvaluateClaim)
		r.Get("/schedule", h.GetSchedule)
	})

	if opts.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// NewServer wraps the router in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
