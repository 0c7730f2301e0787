package attest

import (
	"context"
	"sync"

	"zkattest/internal/indexer"
	"zkattest/internal/network"
)

// Request is a statement-specific generate input. Each engine package defines
// its own strict input struct implementing this marker.
type Request interface {
	StatementType() StatementType
}

// VerifyOptions carries caller-side expectations checked during verification.
type VerifyOptions struct {
	// ExpectedDID, when set, requires the proof's requester_did signal to
	// match exactly.
	ExpectedDID string
}

// Engine computes one statement type's truth value from secret inputs,
// produces a Proof in either live or placeholder mode, and verifies a Proof
// against mode-specific trust rules.
type Engine interface {
	StatementType() StatementType
	// Generate never returns an error for bad user data; it returns a
	// failure proof instead. Errors are reserved for protocol mismatches.
	Generate(ctx context.Context, req Request) (*Proof, error)
	// Verify returns false for every verification failure; the error is
	// non-nil only for protocol mismatches and unimplemented paths.
	Verify(ctx context.Context, proof *Proof, opts VerifyOptions) (bool, error)
}

// Network is the engine's view of the network client state.
// *network.Manager satisfies it.
type Network interface {
	Initialize(ctx context.Context) network.Mode
	Current() network.Snapshot
}

// Ledger is the engine's view of the indexer query client.
// *indexer.Client satisfies it.
type Ledger interface {
	InstanceState(ctx context.Context, address string) (*indexer.InstanceState, error)
	Transaction(ctx context.Context, txID string) (*indexer.Transaction, error)
}

// LazyNetwork memoizes network initialization per engine instance:
// Initialize runs at most once unless Reset is called, while the returned
// snapshot is always re-fetched so callers never act on a stale one across a
// re-initialization.
type LazyNetwork struct {
	source Network

	mu          sync.Mutex
	initialized bool
}

// NewLazyNetwork wraps a network state source.
func NewLazyNetwork(source Network) *LazyNetwork {
	return &LazyNetwork{source: source}
}

// Ensure initializes the network client once and returns the current
// snapshot.
func (l *LazyNetwork) Ensure(ctx context.Context) network.Snapshot {
	l.mu.Lock()
	if !l.initialized {
		l.source.Initialize(ctx)
		l.initialized = true
	}
	l.mu.Unlock()
	return l.source.Current()
}

// Reset clears the memoization so the next Ensure re-initializes.
func (l *LazyNetwork) Reset() {
	l.mu.Lock()
	l.initialized = false
	l.mu.Unlock()
}
