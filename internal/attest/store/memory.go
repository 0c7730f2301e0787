package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"zkattest/internal/attest"
	"zkattest/internal/sentinel"
)

// ErrNotFound is returned when a proof record is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores proof records in memory for the demo environment.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewInMemory creates an in-memory proof store.
func NewInMemory() *InMemory {
	return &InMemory{
		records: make(map[string]*Record),
	}
}

// Save assigns a fresh identifier and stores a copy of the proof. The stored
// record never aliases the caller's proof, so later mutations by the caller
// cannot corrupt it.
func (s *InMemory) Save(_ context.Context, proof *attest.Proof) (*Record, error) {
	rec := &Record{
		ID:       uuid.NewString(),
		Proof:    copyProof(proof),
		StoredAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return copyRecord(rec), nil
}

// FindByID retrieves a copy of the record by its identifier.
func (s *InMemory) FindByID(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[id]; ok {
		return copyRecord(rec), nil
	}
	return nil, ErrNotFound
}

// Count returns the total number of stored records.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func copyRecord(rec *Record) *Record {
	return &Record{
		ID:       rec.ID,
		Proof:    copyProof(rec.Proof),
		StoredAt: rec.StoredAt,
	}
}

func copyProof(p *attest.Proof) *attest.Proof {
	cp := *p
	if p.PublicSignals != nil {
		cp.PublicSignals = make(attest.Signals, len(p.PublicSignals))
		for k, v := range p.PublicSignals {
			cp.PublicSignals[k] = v
		}
	}
	if p.OnChainRef != nil {
		ref := *p.OnChainRef
		cp.OnChainRef = &ref
	}
	return &cp
}
