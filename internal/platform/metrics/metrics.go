package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. All observe
// methods are nil-safe so tests can pass a nil collector.
type Metrics struct {
	ProofsGenerated *prometheus.CounterVec
	ProofFailures   *prometheus.CounterVec
	Verifications   *prometheus.CounterVec

	ProbeResults *prometheus.CounterVec
	ProbeLatency prometheus.Histogram

	IndexerQueries      *prometheus.CounterVec
	IndexerQueryLatency *prometheus.HistogramVec

	BreakerTransitions *prometheus.CounterVec

	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
// Call once at startup.
func New() *Metrics {
	return &Metrics{
		ProofsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zkattest_proofs_generated_total",
			Help: "Total proofs generated, labeled by statement type and network mode",
		}, []string{"statement_type", "network"}),
		ProofFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zkattest_proof_input_failures_total",
			Help: "Total generate calls that produced a failure proof from invalid input",
		}, []string{"statement_type"}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zkattest_verifications_total",
			Help: "Total proof verifications, labeled by statement type and outcome",
		}, []string{"statement_type", "outcome"}),
		ProbeResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zkattest_network_probe_results_total",
			Help: "Total availability probe results, labeled by outcome",
		}, []string{"outcome"}),
		ProbeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zkattest_network_probe_latency_seconds",
			Help:    "Latency of availability probes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		IndexerQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zkattest_indexer_queries_total",
			Help: "Total indexer queries, labeled by operation and result",
		}, []string{"operation", "result"}),
		IndexerQueryLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zkattest_indexer_query_latency_seconds",
			Help:    "Latency of indexer queries in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		BreakerTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zkattest_breaker_transitions_total",
			Help: "Circuit breaker transitions, labeled by breaker name and new state",
		}, []string{"name", "state"}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zkattest_endpoint_latency_seconds",
			Help:    "Latency of HTTP endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// ObserveProofGenerated records a successfully generated proof.
func (m *Metrics) ObserveProofGenerated(statementType, network string) {
	if m == nil || m.ProofsGenerated == nil {
		return
	}
	m.ProofsGenerated.WithLabelValues(statementType, network).Inc()
}

// ObserveProofFailure records a generate call that returned a failure proof.
func (m *Metrics) ObserveProofFailure(statementType string) {
	if m == nil || m.ProofFailures == nil {
		return
	}
	m.ProofFailures.WithLabelValues(statementType).Inc()
}

// ObserveVerification records a verification outcome ("valid" or "invalid").
func (m *Metrics) ObserveVerification(statementType string, valid bool) {
	if m == nil || m.Verifications == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.Verifications.WithLabelValues(statementType, outcome).Inc()
}

// ObserveProbe records an availability probe outcome and latency.
func (m *Metrics) ObserveProbe(outcome string, elapsed time.Duration) {
	if m == nil || m.ProbeResults == nil {
		return
	}
	m.ProbeResults.WithLabelValues(outcome).Inc()
	m.ProbeLatency.Observe(elapsed.Seconds())
}

// ObserveIndexerQuery records an indexer query result and latency.
func (m *Metrics) ObserveIndexerQuery(operation, result string, elapsed time.Duration) {
	if m == nil || m.IndexerQueries == nil {
		return
	}
	m.IndexerQueries.WithLabelValues(operation, result).Inc()
	m.IndexerQueryLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveBreakerTransition records a circuit breaker state change.
func (m *Metrics) ObserveBreakerTransition(name, state string) {
	if m == nil || m.BreakerTransitions == nil {
		return
	}
	m.BreakerTransitions.WithLabelValues(name, state).Inc()
}

// ObserveEndpointLatency records request latency for an endpoint.
func (m *Metrics) ObserveEndpointLatency(endpoint string, elapsed time.Duration) {
	if m == nil || m.EndpointLatency == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
