// Package httptransport is the thin HTTP layer. Handlers delegate to the
// proof dispatcher and the proof store without embedding statement logic, so
// transport concerns remain isolated.
package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zkattest/internal/attest"
	"zkattest/internal/attest/store"
	"zkattest/internal/network"
	"zkattest/internal/platform/metrics"
	"zkattest/internal/sentinel"
	domainerrors "zkattest/pkg/domain-errors"
	"zkattest/pkg/identity"
	"zkattest/pkg/platform/httputil"
)

// ProofService dispatches generate and verify calls by statement type.
// *attest.Dispatcher satisfies it.
type ProofService interface {
	Generate(ctx context.Context, req attest.Request) (*attest.Proof, error)
	Verify(ctx context.Context, proof *attest.Proof, opts attest.VerifyOptions) (bool, error)
	StatementTypes() []string
}

// ModeSource exposes the current network client state. *network.Manager
// satisfies it.
type ModeSource interface {
	Current() network.Snapshot
}

// Handler serves the proof lifecycle endpoints.
type Handler struct {
	proofs  ProofService
	store   store.ProofStore
	mode    ModeSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler creates the HTTP handler.
func NewHandler(proofs ProofService, proofStore store.ProofStore, mode ModeSource, opts ...HandlerOption) *Handler {
	h := &Handler{
		proofs: proofs,
		store:  proofStore,
		mode:   mode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GenerateProofResponse is the body returned by the generate endpoints.
type GenerateProofResponse struct {
	ProofID      string        `json:"proof_id"`
	RequesterDID string        `json:"requester_did,omitempty"`
	Proof        *attest.Proof `json:"proof"`
}

// VerifyProofResponse is the body returned by the verify endpoint.
type VerifyProofResponse struct {
	Verified      bool   `json:"verified"`
	StatementType string `json:"statement_type"`
}

func (h *Handler) handleAgeProof(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[AgeProofRequest](w, r, h.logger)
	if !ok {
		return
	}
	in := req.Input()
	if in.RequesterDID == "" {
		in.RequesterDID = identity.NewEphemeralDID()
	}
	h.generate(w, r, in, in.RequesterDID)
}

func (h *Handler) handleCredentialProof(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[CredentialProofRequest](w, r, h.logger)
	if !ok {
		return
	}
	in := req.Input()
	if in.RequesterDID == "" {
		in.RequesterDID = identity.NewEphemeralDID()
	}
	h.generate(w, r, in, in.RequesterDID)
}

func (h *Handler) handleRangeProof(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[RangeProofRequest](w, r, h.logger)
	if !ok {
		return
	}
	in := req.Input()
	if in.RequesterDID == "" {
		in.RequesterDID = identity.NewEphemeralDID()
	}
	h.generate(w, r, in, in.RequesterDID)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, in attest.Request, requesterDID string) {
	proof, err := h.proofs.Generate(r.Context(), in)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "proof generation failed",
			"statement_type", string(in.StatementType()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.store.Save(r.Context(), proof)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to persist proof", "error", err)
		httputil.WriteError(w, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to persist proof"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, GenerateProofResponse{
		ProofID:      rec.ID,
		RequesterDID: requesterDID,
		Proof:        rec.Proof,
	})
}

func (h *Handler) handleVerifyProof(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[VerifyProofRequest](w, r, h.logger)
	if !ok {
		return
	}

	verified, err := h.proofs.Verify(r.Context(), req.Proof, attest.VerifyOptions{
		ExpectedDID: req.ExpectedDID,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "proof verification errored",
			"statement_type", string(req.Proof.StatementType),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, VerifyProofResponse{
		Verified:      verified,
		StatementType: string(req.Proof.StatementType),
	})
}

func (h *Handler) handleGetProof(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeNotFound, "proof not found"))
			return
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

// ServiceDescriptor is the GET / body: what this instance can attest to and
// which network mode it currently runs in.
type ServiceDescriptor struct {
	Service        string   `json:"service"`
	StatementTypes []string `json:"statement_types"`
	NetworkMode    string   `json:"network_mode"`
	Connected      bool     `json:"connected"`
	NetworkID      string   `json:"network_id,omitempty"`
}

func (h *Handler) handleDescriptor(w http.ResponseWriter, _ *http.Request) {
	snap := h.mode.Current()
	httputil.WriteJSON(w, http.StatusOK, ServiceDescriptor{
		Service:        "zkattest",
		StatementTypes: h.proofs.StatementTypes(),
		NetworkMode:    string(snap.Mode),
		Connected:      snap.Connected,
		NetworkID:      snap.Config.NetworkID,
	})
}
