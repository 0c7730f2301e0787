// Package age implements the age_verification attestation engine: it proves
// that a subject's age, computed from a secret birth date, meets a minimum
// threshold without disclosing the birth date itself.
package age

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"zkattest/internal/attest"
	"zkattest/internal/network"
	"zkattest/internal/platform/metrics"
	domainerrors "zkattest/pkg/domain-errors"
	"zkattest/pkg/platform/tracer"
)

// Input is the generate request. BirthDate is the secret witness; it never
// appears in the resulting proof's public signals.
type Input struct {
	BirthDate attest.DateValue `json:"birth_date"`
	// CurrentDate overrides the evaluation date; zero means now. It makes
	// boundary behavior reproducible.
	CurrentDate  attest.DateValue `json:"current_date"`
	MinAge       int              `json:"min_age"`
	RequesterDID string           `json:"requester_did"`
}

// StatementType implements attest.Request.
func (Input) StatementType() attest.StatementType { return attest.StatementAgeVerification }

// Engine generates and verifies age threshold proofs.
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

// WithLedger overrides the ledger used for live verification. Without it the
// engine uses the indexer provider from the current network snapshot.
func WithLedger(l attest.Ledger) Option {
	return func(e *Engine) { e.ledger = l }
}

// New creates the engine. The network source is initialized lazily on first
// use, so constructing engines stays free of I/O.
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
func (e *Engine) StatementType() attest.StatementType { return attest.StatementAgeVerification }

// Generate computes whether the subject meets the minimum age and wraps the
// outcome in a proof for the current network mode. Invalid user input yields
// a failure proof, never an error.
func (e *Engine) Generate(ctx context.Context, req attest.Request) (*attest.Proof, error) {
	ctx, span := e.tracer.Start(ctx, "age.Generate")
	var spanErr error
	defer func() { span.End(spanErr) }()

	in, ok := req.(Input)
	if !ok {
		spanErr = domainerrors.New(domainerrors.CodeInvalidInput,
			fmt.Sprintf("age engine received %T", req))
		return nil, spanErr
	}

	if fail := e.validate(in); fail != nil {
		e.metrics.ObserveProofFailure(string(attest.StatementAgeVerification))
		return attest.FailureProof(attest.StatementAgeVerification, attest.SignalVerified, fail), nil
	}

	birth, err := in.BirthDate.Resolve()
	if err != nil {
		e.metrics.ObserveProofFailure(string(attest.StatementAgeVerification))
		return attest.FailureProof(attest.StatementAgeVerification, attest.SignalVerified, err), nil
	}
	current := time.Now()
	if !in.CurrentDate.IsZero() {
		if current, err = in.CurrentDate.Resolve(); err != nil {
			e.metrics.ObserveProofFailure(string(attest.StatementAgeVerification))
			return attest.FailureProof(attest.StatementAgeVerification, attest.SignalVerified, err), nil
		}
	}

	verified := yearsBetween(birth, current) >= in.MinAge

	snap := e.network.Ensure(ctx)
	signals := attest.Signals{
		attest.SignalVerified: verified,
		attest.SignalMinAge:   in.MinAge,
		attest.SignalNetwork:  string(snap.Mode),
	}
	if in.RequesterDID != "" {
		signals[attest.SignalRequesterDID] = in.RequesterDID
	}

	proof := &attest.Proof{
		StatementType:     attest.StatementAgeVerification,
		ProofBytes:        attest.MarkerBytes(attest.StatementAgeVerification, snap.Mode),
		PublicSignals:     signals,
		VerificationKeyID: attest.VerificationKeyID(attest.StatementAgeVerification, snap.Mode),
		GeneratedAt:       time.Now().UTC(),
	}

	if snap.Mode == network.ModeLive {
		// On-chain submission is not wired yet. Each would-be submission
		// targets a fresh single-use instance; the proof stays pending
		// until a real anchor is attached.
		instanceID := uuid.NewString()
		e.logger.Info("live proof generated awaiting on-chain submission",
			"statement_type", string(attest.StatementAgeVerification),
			"instance_id", instanceID,
		)
	}

	span.SetAttributes(
		tracer.Bool("verified", verified),
		tracer.String("network", string(snap.Mode)),
	)
	e.metrics.ObserveProofGenerated(string(attest.StatementAgeVerification), string(snap.Mode))
	return proof, nil
}

func (e *Engine) validate(in Input) error {
	if in.MinAge <= 0 {
		return fmt.Errorf("min_age must be a positive number of years")
	}
	if in.BirthDate.IsZero() {
		return fmt.Errorf("birth_date is required")
	}
	return nil
}

// Verify checks a proof's structure, the caller's DID binding, and the
// mode-specific trust rules. A verification failure is an ordinary false
// result; errors are reserved for protocol mismatches.
func (e *Engine) Verify(ctx context.Context, proof *attest.Proof, opts attest.VerifyOptions) (bool, error) {
	ctx, span := e.tracer.Start(ctx, "age.Verify")
	var spanErr error
	defer func() { span.End(spanErr) }()

	if proof.StatementType != attest.StatementAgeVerification {
		spanErr = domainerrors.New(domainerrors.CodeCircuitMismatch,
			fmt.Sprintf("age engine cannot verify %q proofs", proof.StatementType))
		return false, spanErr
	}

	claimed, ok := proof.PublicSignals.Bool(attest.SignalVerified)
	if !ok {
		e.observeVerification(false)
		return false, nil
	}
	if _, ok := proof.PublicSignals.Number(attest.SignalMinAge); !ok {
		e.observeVerification(false)
		return false, nil
	}
	if opts.ExpectedDID != "" {
		did, _ := proof.PublicSignals.String(attest.SignalRequesterDID)
		if did != opts.ExpectedDID {
			e.logger.Info("proof requester does not match expected identity",
				"statement_type", string(attest.StatementAgeVerification))
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
	e.metrics.ObserveVerification(string(attest.StatementAgeVerification), result)
}

// yearsBetween returns whole calendar years from birth to current: the year
// difference, minus one if the birthday has not yet occurred in the current
// year. Month-then-day comparison keeps the birthday boundary exact.
func yearsBetween(birth, current time.Time) int {
	years := current.Year() - birth.Year()
	if current.Month() < birth.Month() ||
		(current.Month() == birth.Month() && current.Day() < birth.Day()) {
		years--
	}
	return years
}
