package sentinel

import "errors"

// Sentinel dependency errors. Infrastructure clients should return these
// (optionally wrapped) so engines can translate them into domain errors or
// verification outcomes exactly once.
var (
	// ErrNotFound reports definitive absence of data: the indexer answered
	// and the requested instance or transaction does not exist. Transport
	// and parse failures are logged and collapsed to this as well, because
	// the protocol treats "could not confirm" and "not present" identically
	// at the query layer.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable reports that a dependency was skipped without being
	// queried, e.g. because its circuit breaker is open.
	ErrUnavailable = errors.New("unavailable")
)
