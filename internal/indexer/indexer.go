// Package indexer implements read-only queries against the proving network's
// state indexer. Both operations are tolerant of partial failure: transport
// and parse errors are logged for diagnostics and collapsed to
// sentinel.ErrNotFound, so callers never confuse "could not confirm" with
// "data says invalid".
package indexer

// InstanceState is the current on-chain state of a deployed attestation
// instance.
type InstanceState struct {
	Address string
	// Verified is the attestation outcome recorded on chain.
	Verified bool
	// Data carries the remaining ledger state fields untyped; verification
	// only ever inspects Verified.
	Data map[string]any
}

// Transaction is the ledger confirmation record for a submitted transaction.
type Transaction struct {
	TxID        string
	BlockHeight int64
}
