// Package credential implements the credential_proof attestation engine: it
// proves a credential is unexpired and carries an issuer signature without
// disclosing the credential hash or the signature itself. Cryptographic
// signature validation is delegated to the remote circuit; this engine checks
// presence only.
package credential

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zkattest/internal/attest"
	"zkattest/internal/platform/metrics"
	domainerrors "zkattest/pkg/domain-errors"
	"zkattest/pkg/identity"
	"zkattest/pkg/platform/tracer"
)

// Input is the generate request. CredentialHash and IssuerSignature are
// secret witnesses; they never appear in the resulting proof's public
// signals.
type Input struct {
	CredentialType  string           `json:"credential_type"`
	CredentialHash  string           `json:"credential_hash"`
	IssuerSignature string           `json:"issuer_signature"`
	IssuerPublicKey string           `json:"issuer_public_key"`
	ExpiresAt       attest.DateValue `json:"expires_at"`
	RequesterDID    string           `json:"requester_did"`
}

// StatementType implements attest.Request.
func (Input) StatementType() attest.StatementType { return attest.StatementCredentialProof }

// Engine generates and verifies credential validity proofs.
type Engine struct {
	network *attest.LazyNetwork
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	now     func() time.Time
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

// WithClock overrides the expiry clock in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates the engine.
func New(source attest.Network, opts ...Option) *Engine {
	e := &Engine{
		network: attest.NewLazyNetwork(source),
		logger:  slog.Default(),
		tracer:  tracer.Noop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StatementType implements attest.Engine.
func (e *Engine) StatementType() attest.StatementType { return attest.StatementCredentialProof }

// Generate computes credential validity and wraps the outcome in a proof for
// the current network mode. A missing or empty signature is an ordinary
// invalid outcome, not a request error.
func (e *Engine) Generate(ctx context.Context, req attest.Request) (*attest.Proof, error) {
	ctx, span := e.tracer.Start(ctx, "credential.Generate")
	var spanErr error
	defer func() { span.End(spanErr) }()

	in, ok := req.(Input)
	if !ok {
		spanErr = domainerrors.New(domainerrors.CodeInvalidInput,
			fmt.Sprintf("credential engine received %T", req))
		return nil, spanErr
	}

	if fail := e.validate(in); fail != nil {
		e.metrics.ObserveProofFailure(string(attest.StatementCredentialProof))
		return attest.FailureProof(attest.StatementCredentialProof, attest.SignalValid, fail), nil
	}
	expiry, err := in.ExpiresAt.Resolve()
	if err != nil {
		e.metrics.ObserveProofFailure(string(attest.StatementCredentialProof))
		return attest.FailureProof(attest.StatementCredentialProof, attest.SignalValid, err), nil
	}

	valid := expiry.After(e.now()) && in.IssuerSignature != ""

	e.logger.Debug("credential evaluated",
		"credential_type", in.CredentialType,
		"credential_fp", identity.Fingerprint(in.CredentialHash),
		"signature_present", in.IssuerSignature != "",
		"valid", valid,
	)

	snap := e.network.Ensure(ctx)
	signals := attest.Signals{
		attest.SignalValid:           valid,
		attest.SignalCredentialType:  in.CredentialType,
		attest.SignalIssuerPublicKey: in.IssuerPublicKey,
		attest.SignalNetwork:         string(snap.Mode),
	}
	if in.RequesterDID != "" {
		signals[attest.SignalRequesterDID] = in.RequesterDID
	}

	proof := &attest.Proof{
		StatementType:     attest.StatementCredentialProof,
		ProofBytes:        attest.MarkerBytes(attest.StatementCredentialProof, snap.Mode),
		PublicSignals:     signals,
		VerificationKeyID: attest.VerificationKeyID(attest.StatementCredentialProof, snap.Mode),
		GeneratedAt:       time.Now().UTC(),
	}

	span.SetAttributes(
		tracer.Bool("valid", valid),
		tracer.String("network", string(snap.Mode)),
	)
	e.metrics.ObserveProofGenerated(string(attest.StatementCredentialProof), string(snap.Mode))
	return proof, nil
}

func (e *Engine) validate(in Input) error {
	if in.CredentialType == "" {
		return fmt.Errorf("credential_type is required")
	}
	if in.IssuerPublicKey == "" {
		return fmt.Errorf("issuer_public_key is required")
	}
	if in.ExpiresAt.IsZero() {
		return fmt.Errorf("expires_at is required")
	}
	return nil
}

// Verify checks the proof structurally and requires the claimed validity to
// be true. A proof carrying an on-chain reference fails loud with a
// not_implemented error: on-chain verification for credential statements has
// no defined protocol yet, and silently accepting one would be worse than
// refusing.
func (e *Engine) Verify(ctx context.Context, proof *attest.Proof, opts attest.VerifyOptions) (bool, error) {
	ctx, span := e.tracer.Start(ctx, "credential.Verify")
	var spanErr error
	defer func() { span.End(spanErr) }()

	if proof.StatementType != attest.StatementCredentialProof {
		spanErr = domainerrors.New(domainerrors.CodeCircuitMismatch,
			fmt.Sprintf("credential engine cannot verify %q proofs", proof.StatementType))
		return false, spanErr
	}
	if proof.OnChainRef != nil {
		spanErr = domainerrors.New(domainerrors.CodeNotImplemented,
			"on-chain verification is not implemented for credential proofs")
		return false, spanErr
	}

	valid, ok := proof.PublicSignals.Bool(attest.SignalValid)
	if !ok {
		e.observeVerification(false)
		return false, nil
	}
	if ct, ok := proof.PublicSignals.String(attest.SignalCredentialType); !ok || ct == "" {
		e.observeVerification(false)
		return false, nil
	}
	if pk, ok := proof.PublicSignals.String(attest.SignalIssuerPublicKey); !ok || pk == "" {
		e.observeVerification(false)
		return false, nil
	}
	if opts.ExpectedDID != "" {
		did, _ := proof.PublicSignals.String(attest.SignalRequesterDID)
		if did != opts.ExpectedDID {
			e.logger.Info("proof requester does not match expected identity",
				"statement_type", string(attest.StatementCredentialProof))
			e.observeVerification(false)
			return false, nil
		}
	}
	if !valid {
		e.observeVerification(false)
		return false, nil
	}

	snap := e.network.Ensure(ctx)
	result := attest.CheckAnchoring(ctx, proof, valid, snap.Mode, nil, e.logger)
	span.SetAttributes(tracer.Bool("result", result))
	e.observeVerification(result)
	return result, nil
}

func (e *Engine) observeVerification(result bool) {
	e.metrics.ObserveVerification(string(attest.StatementCredentialProof), result)
}
