package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/travel-inquiry/backend/internal/middleware"
)

// defaultMaxBodyBytes applies when RouterOptions.MaxBodyBytes is not set.
const defaultMaxBodyBytes = 64 << 10

// RouterOptions configures the middleware chain built by NewRouter.
type RouterOptions struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64

	// Metrics, when set, counts every request.
	Metrics middleware.RequestObserver
	// Gatherer, when set, is exposed at GET /metrics.
	Gatherer prometheus.Gatherer
}

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface.
//
// Middleware is applied in order: RequestID → RealIP → SlogLogger → metrics →
// recoverer → CORS. CORS runs for every route so pre-flight requests are
// answered before routing and every response carries the same headers.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	limit := opts.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	if opts.Metrics != nil {
		r.Use(middleware.NewRequestMetrics(opts.Metrics))
	}
	r.Use(s.recoverer)
	r.Use(middleware.NewCORSHandler(origins))

	r.Get("/healthz", s.GetHealth)
	r.Get("/config.js", s.GetConfigJS)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.With(middleware.NewMaxBodySizeHandler(limit, http.HandlerFunc(s.rejectTooLarge))).Post("/submissions", s.CreateSubmission)

	return r
}
