// Package network tracks connectivity to the remote proving network. A
// Manager owns the current client state: connected-live with provider handles
// bound to the indexer, or offline-mocked with no providers. The state is
// re-evaluated on demand via Initialize, never continuously polled.
package network

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"zkattest/internal/indexer"
	"zkattest/internal/platform/config"
	"zkattest/internal/platform/metrics"
	"zkattest/pkg/platform/circuit"
)

// Mode labels the connectivity mode proofs are generated under.
type Mode string

const (
	// ModeLive means the proving network is reachable and proofs should be
	// anchored to it.
	ModeLive Mode = "live"
	// ModeMocked means the service runs offline with locally trusted
	// placeholder proofs.
	ModeMocked Mode = "mocked"
)

// Providers holds handles bound to the remote network. Present only in live
// mode. The handles are immutable after construction; a re-initialization
// builds fresh ones rather than mutating these.
type Providers struct {
	// Indexer is bound to the indexer query endpoint captured at
	// initialization time.
	Indexer *indexer.Client
}

// Snapshot is an immutable copy of the client state. Callers must re-fetch a
// snapshot before each use instead of caching it across calls that may span a
// re-initialization; provider handles are not guaranteed valid across
// re-inits.
type Snapshot struct {
	Connected bool
	Mode      Mode
	Providers *Providers
	Config    config.Network
	CheckedAt time.Time
}

// Manager owns the process-wide network client state. The zero state is
// offline-mocked; Initialize re-evaluates connectivity and atomically
// replaces the snapshot, so concurrent readers are never exposed to a
// half-updated state.
type Manager struct {
	cfg     config.Network
	logger  *slog.Logger
	metrics *metrics.Metrics
	state   atomic.Pointer[Snapshot]
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(mx *metrics.Metrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = mx
	}
}

// NewManager creates a Manager seeded with the offline-mocked default state.
func NewManager(cfg config.Network, opts ...ManagerOption) *Manager {
	m := &Manager{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state.Store(&Snapshot{
		Connected: false,
		Mode:      ModeMocked,
		Config:    cfg,
		CheckedAt: time.Now(),
	})
	return m
}

// Initialize probes the proving network and replaces the state snapshot. On
// success it builds fresh provider handles bound to the indexer endpoint; on
// failure it stores the offline state and drops any stale providers.
// Re-initialization is idempotent and always supersedes the previous
// snapshot. Unavailability is never an error, only a mode.
func (m *Manager) Initialize(ctx context.Context) Mode {
	start := time.Now()
	available := Probe(ctx, m.cfg, m.logger)
	elapsed := time.Since(start)

	next := &Snapshot{
		Config:    m.cfg,
		CheckedAt: time.Now(),
	}
	if available {
		next.Connected = true
		next.Mode = ModeLive
		next.Providers = &Providers{
			Indexer: indexer.New(m.cfg.IndexerURL,
				indexer.WithTimeout(m.cfg.QueryTimeout),
				indexer.WithLogger(m.logger),
				indexer.WithMetrics(m.metrics),
				indexer.WithBreaker(circuit.New("indexer")),
			),
		}
		m.metrics.ObserveProbe("available", elapsed)
	} else {
		next.Connected = false
		next.Mode = ModeMocked
		if m.cfg.SkipNetworkCheck {
			m.metrics.ObserveProbe("skipped", elapsed)
		} else {
			m.metrics.ObserveProbe("unavailable", elapsed)
		}
	}

	m.state.Store(next)
	m.logger.Info("network client state initialized",
		"mode", string(next.Mode),
		"connected", next.Connected,
		"network_id", m.cfg.NetworkID,
	)
	return next.Mode
}

// Current returns a defensive copy of the state snapshot. The copy shares the
// immutable provider handles but no mutable fields, so a re-initialization in
// flight never affects a reader.
func (m *Manager) Current() Snapshot {
	return *m.state.Load()
}
