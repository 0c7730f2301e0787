// Package rangeproof implements the range_proof attestation engine: it proves
// a secret numeric value lies within an inclusive [min, max] interval without
// disclosing the value.
package rangeproof

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zkattest/internal/attest"
	"zkattest/internal/network"
	"zkattest/internal/platform/metrics"
	domainerrors "zkattest/pkg/domain-errors"
	"zkattest/pkg/platform/tracer"
)

// Input is the generate request. Value is the secret witness and must stay
// out of the public signals. It is a pointer so an absent value is
// distinguishable from a legitimate zero.
type Input struct {
	Value        *int64 `json:"value"`
	Min          int64  `json:"min"`
	Max          int64  `json:"max"`
	RequesterDID string `json:"requester_did"`
}

// StatementType implements attest.Request.
func (Input) StatementType() attest.StatementType { return attest.StatementRangeProof }

// Engine generates and verifies inclusive range membership proofs.
type Engine struct {
	network *attest.LazyNetwork
	ledger  attest.Ledger
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer sets the tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithLedger overrides the ledger used for live verification.
func WithLedger(l attest.Ledger) Option {
	return func(e *Engine) { e.ledger = l }
}

// New creates the engine.
func New(source attest.Network, opts ...Option) *Engine {
	e := &Engine{
		network: attest.NewLazyNetwork(source),
		logger:  slog.Default(),
		tracer:  tracer.Noop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StatementType implements attest.Engine.
func (e *Engine) StatementType() attest.StatementType { return attest.StatementRangeProof }

// Generate computes inclusive range membership and wraps the outcome in a
// proof for the current network mode.
func (e *Engine) Generate(ctx context.Context, req attest.Request) (*attest.Proof, error) {
	ctx, span := e.tracer.Start(ctx, "rangeproof.Generate")
	var spanErr error
	defer func() { span.End(spanErr) }()

	in, ok := req.(Input)
	if !ok {
		spanErr = domainerrors.New(domainerrors.CodeInvalidInput,
			fmt.Sprintf("range engine received %T", req))
		return nil, spanErr
	}

	if fail := e.validate(in); fail != nil {
		e.metrics.ObserveProofFailure(string(attest.StatementRangeProof))
		return attest.FailureProof(attest.StatementRangeProof, attest.SignalVerified, fail), nil
	}

	verified := *in.Value >= in.Min && *in.Value <= in.Max

	snap := e.network.Ensure(ctx)
	signals := attest.Signals{
		attest.SignalVerified: verified,
		attest.SignalMin:      in.Min,
		attest.SignalMax:      in.Max,
		attest.SignalNetwork:  string(snap.Mode),
	}
	if in.RequesterDID != "" {
		signals[attest.SignalRequesterDID] = in.RequesterDID
	}

	proof := &attest.Proof{
		StatementType:     attest.StatementRangeProof,
		ProofBytes:        attest.MarkerBytes(attest.StatementRangeProof, snap.Mode),
		PublicSignals:     signals,
		VerificationKeyID: attest.VerificationKeyID(attest.StatementRangeProof, snap.Mode),
		GeneratedAt:       time.Now().UTC(),
	}

	span.SetAttributes(
		tracer.Bool("verified", verified),
		tracer.String("network", string(snap.Mode)),
	)
	e.metrics.ObserveProofGenerated(string(attest.StatementRangeProof), string(snap.Mode))
	return proof, nil
}

func (e *Engine) validate(in Input) error {
	if in.Value == nil {
		return fmt.Errorf("value is required")
	}
	if in.Min > in.Max {
		return fmt.Errorf("min %d exceeds max %d", in.Min, in.Max)
	}
	return nil
}

// Verify checks a proof's structure, the caller's DID binding, and the
// mode-specific trust rules.
func (e *Engine) Verify(ctx context.Context, proof *attest.Proof, opts attest.VerifyOptions) (bool, error) {
	ctx, span := e.tracer.Start(ctx, "rangeproof.Verify")
	var spanErr error
	defer func() { span.End(spanErr) }()

	if proof.StatementType != attest.StatementRangeProof {
		spanErr = domainerrors.New(domainerrors.CodeCircuitMismatch,
			fmt.Sprintf("range engine cannot verify %q proofs", proof.StatementType))
		return false, spanErr
	}

	claimed, ok := proof.PublicSignals.Bool(attest.SignalVerified)
	if !ok {
		e.observeVerification(false)
		return false, nil
	}
	min, okMin := proof.PublicSignals.Number(attest.SignalMin)
	max, okMax := proof.PublicSignals.Number(attest.SignalMax)
	if !okMin || !okMax || min > max {
		e.observeVerification(false)
		return false, nil
	}
	if opts.ExpectedDID != "" {
		did, _ := proof.PublicSignals.String(attest.SignalRequesterDID)
		if did != opts.ExpectedDID {
			e.logger.Info("proof requester does not match expected identity",
				"statement_type", string(attest.StatementRangeProof))
			e.observeVerification(false)
			return false, nil
		}
	}

	snap := e.network.Ensure(ctx)
	result := attest.CheckAnchoring(ctx, proof, claimed, snap.Mode, e.ledgerFor(snap), e.logger)
	span.SetAttributes(tracer.Bool("result", result))
	e.observeVerification(result)
	return result, nil
}

func (e *Engine) ledgerFor(snap network.Snapshot) attest.Ledger {
	if e.ledger != nil {
		return e.ledger
	}
	if snap.Providers != nil && snap.Providers.Indexer != nil {
		return snap.Providers.Indexer
	}
	return nil
}

func (e *Engine) observeVerification(result bool) {
	e.metrics.ObserveVerification(string(attest.StatementRangeProof), result)
}
