package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zkattest/internal/attest"
	"zkattest/internal/sentinel"
)

func sampleProof() *attest.Proof {
	return &attest.Proof{
		StatementType: attest.StatementAgeVerification,
		ProofBytes:    "marker",
		PublicSignals: attest.Signals{
			attest.SignalVerified: true,
			attest.SignalMinAge:   18,
			attest.SignalNetwork:  "mocked",
		},
		VerificationKeyID: "vk:mocked:age_verification",
	}
}

func TestSaveAndFind(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	rec, err := s.Save(ctx, sampleProof())
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.StoredAt.IsZero())

	found, err := s.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)
	assert.Equal(t, attest.StatementAgeVerification, found.Proof.StatementType)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFindUnknownID(t *testing.T) {
	s := NewInMemory()

	_, err := s.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestStoredRecordsDoNotAlias(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	original := sampleProof()
	rec, err := s.Save(ctx, original)
	require.NoError(t, err)

	// Mutating the caller's proof and the returned record must not reach
	// the stored copy.
	original.PublicSignals[attest.SignalVerified] = false
	rec.Proof.PublicSignals[attest.SignalMinAge] = 99

	found, err := s.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	verified, _ := found.Proof.PublicSignals.Bool(attest.SignalVerified)
	assert.True(t, verified)
	minAge, _ := found.Proof.PublicSignals.Number(attest.SignalMinAge)
	assert.Equal(t, float64(18), minAge)
}

func TestDistinctIDs(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, err := s.Save(ctx, sampleProof())
	require.NoError(t, err)
	b, err := s.Save(ctx, sampleProof())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
