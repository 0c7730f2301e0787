package rangeproof

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zkattest/internal/attest"
	"zkattest/internal/indexer"
	"zkattest/internal/network"
	"zkattest/internal/sentinel"
)

type fakeNetwork struct {
	mode network.Mode
}

func (f *fakeNetwork) Initialize(context.Context) network.Mode { return f.mode }

func (f *fakeNetwork) Current() network.Snapshot {
	return network.Snapshot{Connected: f.mode == network.ModeLive, Mode: f.mode}
}

type fakeLedger struct {
	states map[string]*indexer.InstanceState
	txs    map[string]*indexer.Transaction
}

func (f *fakeLedger) InstanceState(_ context.Context, address string) (*indexer.InstanceState, error) {
	if s, ok := f.states[address]; ok {
		return s, nil
	}
	return nil, sentinel.ErrNotFound
}

func (f *fakeLedger) Transaction(_ context.Context, txID string) (*indexer.Transaction, error) {
	if tx, ok := f.txs[txID]; ok {
		return tx, nil
	}
	return nil, sentinel.ErrNotFound
}

func newMockedEngine() *Engine {
	return New(&fakeNetwork{mode: network.ModeMocked}, WithLogger(slog.New(slog.DiscardHandler)))
}

func ptr(v int64) *int64 { return &v }

func TestGenerateInclusiveBounds(t *testing.T) {
	e := newMockedEngine()

	cases := []struct {
		name  string
		value int64
		min   int64
		max   int64
		want  bool
	}{
		{"inside", 50, 0, 100, true},
		{"at min", 0, 0, 100, true},
		{"at max", 100, 0, 100, true},
		{"below", -1, 0, 100, false},
		{"above", 101, 0, 100, false},
		{"single point hit", 7, 7, 7, true},
		{"single point miss", 8, 7, 7, false},
		{"negative interval", -50, -100, -10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			proof, err := e.Generate(context.Background(), Input{Value: ptr(tc.value), Min: tc.min, Max: tc.max})
			require.NoError(t, err)
			verified, ok := proof.PublicSignals.Bool(attest.SignalVerified)
			require.True(t, ok)
			assert.Equal(t, tc.want, verified)
		})
	}
}

func TestGenerateValueNeverLeaks(t *testing.T) {
	e := newMockedEngine()

	proof, err := e.Generate(context.Background(), Input{Value: ptr(73), Min: 0, Max: 100})
	require.NoError(t, err)

	_, hasValue := proof.PublicSignals["value"]
	assert.False(t, hasValue)
	min, _ := proof.PublicSignals.Number(attest.SignalMin)
	max, _ := proof.PublicSignals.Number(attest.SignalMax)
	assert.Equal(t, float64(0), min)
	assert.Equal(t, float64(100), max)
}

func TestGenerateInvalidInputYieldsFailureProof(t *testing.T) {
	e := newMockedEngine()

	t.Run("missing value", func(t *testing.T) {
		proof, err := e.Generate(context.Background(), Input{Min: 0, Max: 100})
		require.NoError(t, err)
		assert.Empty(t, proof.ProofBytes)
		verified, ok := proof.PublicSignals.Bool(attest.SignalVerified)
		require.True(t, ok)
		assert.False(t, verified)
	})

	t.Run("inverted interval", func(t *testing.T) {
		proof, err := e.Generate(context.Background(), Input{Value: ptr(5), Min: 10, Max: 1})
		require.NoError(t, err)
		assert.Empty(t, proof.ProofBytes)
		msg, _ := proof.PublicSignals.String(attest.SignalError)
		assert.NotEmpty(t, msg)

		ok, err := e.Verify(context.Background(), proof, attest.VerifyOptions{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVerifyMockedRoundTrip(t *testing.T) {
	e := newMockedEngine()

	proof, err := e.Generate(context.Background(), Input{
		Value:        ptr(21),
		Min:          18,
		Max:          65,
		RequesterDID: "did:ephemeral:abc",
	})
	require.NoError(t, err)

	ok, err := e.Verify(context.Background(), proof, attest.VerifyOptions{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Verify(context.Background(), proof, attest.VerifyOptions{ExpectedDID: "did:ephemeral:other"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyStructuralChecks(t *testing.T) {
	e := newMockedEngine()

	base := func() *attest.Proof {
		return &attest.Proof{
			StatementType: attest.StatementRangeProof,
			PublicSignals: attest.Signals{
				attest.SignalVerified: true,
				attest.SignalMin:      float64(0),
				attest.SignalMax:      float64(100),
				attest.SignalNetwork:  "mocked",
			},
		}
	}

	ok, err := e.Verify(context.Background(), base(), attest.VerifyOptions{})
	require.NoError(t, err)
	require.True(t, ok)

	mutations := map[string]func(*attest.Proof){
		"missing verified": func(p *attest.Proof) { delete(p.PublicSignals, attest.SignalVerified) },
		"missing min":      func(p *attest.Proof) { delete(p.PublicSignals, attest.SignalMin) },
		"missing max":      func(p *attest.Proof) { delete(p.PublicSignals, attest.SignalMax) },
		"inverted bounds": func(p *attest.Proof) {
			p.PublicSignals[attest.SignalMin] = float64(100)
			p.PublicSignals[attest.SignalMax] = float64(0)
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := base()
			mutate(p)
			ok, err := e.Verify(context.Background(), p, attest.VerifyOptions{})
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestVerifyLiveRules(t *testing.T) {
	ledger := &fakeLedger{
		states: map[string]*indexer.InstanceState{
			"0xabc": {Address: "0xabc", Verified: true},
		},
		txs: map[string]*indexer.Transaction{
			"tx1": {TxID: "tx1", BlockHeight: 9},
		},
	}
	e := New(&fakeNetwork{mode: network.ModeLive},
		WithLogger(slog.New(slog.DiscardHandler)),
		WithLedger(ledger),
	)

	anchored := &attest.Proof{
		StatementType: attest.StatementRangeProof,
		PublicSignals: attest.Signals{
			attest.SignalVerified: true,
			attest.SignalMin:      float64(0),
			attest.SignalMax:      float64(100),
			attest.SignalNetwork:  "live",
		},
		OnChainRef: &attest.OnChainRef{TxID: "tx1", InstanceAddress: "0xabc"},
	}

	ok, err := e.Verify(context.Background(), anchored, attest.VerifyOptions{})
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("pending is rejected", func(t *testing.T) {
		pending := *anchored
		pending.OnChainRef = nil
		ok, err := e.Verify(context.Background(), &pending, attest.VerifyOptions{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("mocked proof rejected while live", func(t *testing.T) {
		mocked := *anchored
		mocked.OnChainRef = nil
		mocked.PublicSignals = attest.Signals{
			attest.SignalVerified: true,
			attest.SignalMin:      float64(0),
			attest.SignalMax:      float64(100),
			attest.SignalNetwork:  "mocked",
		}
		ok, err := e.Verify(context.Background(), &mocked, attest.VerifyOptions{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVerifyStatementTypeGate(t *testing.T) {
	e := newMockedEngine()

	_, err := e.Verify(context.Background(), &attest.Proof{StatementType: attest.StatementCredentialProof}, attest.VerifyOptions{})
	assert.Error(t, err)
}
