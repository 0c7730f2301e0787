package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zkattest/internal/platform/health"
	"zkattest/internal/platform/middleware"
)

// NewRouter wires the proof lifecycle endpoints with the middleware stack.
func NewRouter(h *Handler, checks *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(h.endpointLatency)
	r.Use(middleware.Timeout(30 * time.Second))

	checks.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.handleDescriptor)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Post("/proofs/age", h.handleAgeProof)
		r.Post("/proofs/credential", h.handleCredentialProof)
		r.Post("/proofs/range", h.handleRangeProof)
		r.Post("/proofs/verify", h.handleVerifyProof)
	})
	r.Get("/proofs/{id}", h.handleGetProof)

	return r
}

// endpointLatency records per-route request durations using the route pattern
// rather than the raw path, keeping label cardinality bounded.
func (h *Handler) endpointLatency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		h.metrics.ObserveEndpointLatency(pattern, time.Since(start))
	})
}
