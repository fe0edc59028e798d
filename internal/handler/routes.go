package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/flight-search/internal/middleware"
	"github.com/pkordes/flight-search/spec"
)

// DefaultMaxBodyBytes limits the search form body when RouterConfig leaves it unset.
const DefaultMaxBodyBytes = 64 << 10

// RouterConfig holds the settings of the router's middleware stack.
type RouterConfig struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
}

// NewRouter mounts every route of s behind the shared middleware stack.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	// Middleware is applied in order: RequestID → RealIP → Tracing → Logger → Recoverer.
	// RequestID generates a unique ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// Tracing starts the server span so the logger can include its trace ID.
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTracing())
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(s.NotFound)

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	// Pages.
	r.Get("/", s.GetHome)
	r.With(middleware.NewMaxBodySizeHandler(maxBody)).Post("/search", s.PostSearch)
	r.Get("/search-results", s.GetResults)
	r.Get("/airports/suggest", s.GetAirportSuggestions)

	// JSON API, callable cross-origin.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
		r.Get("/airports", s.GetAirports)
	})

	return r
}
