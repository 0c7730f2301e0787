// Package store persists generated proof records so verifiers can retrieve
// them by identifier later.
package store

import (
	"context"
	"time"

	"zkattest/internal/attest"
)

// Record is a stored proof with its assigned identifier.
type Record struct {
	ID       string        `json:"id"`
	Proof    *attest.Proof `json:"proof"`
	StoredAt time.Time     `json:"stored_at"`
}

// ProofStore persists proof records.
type ProofStore interface {
	Save(ctx context.Context, proof *attest.Proof) (*Record, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	Count(ctx context.Context) (int, error)
}
