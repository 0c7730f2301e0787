// Package attest defines the proof record exchanged between attestation
// engines and verifiers, the engine contract, and the dispatcher that routes
// generate/verify calls by statement type.
package attest

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"zkattest/internal/network"
)

// StatementType identifies which attestation statement a proof asserts. It
// selects the verification rule set and must match the dispatcher's
// registered engine before any signal is inspected.
type StatementType string

const (
	StatementAgeVerification StatementType = "age_verification"
	StatementCredentialProof StatementType = "credential_proof"
	StatementRangeProof      StatementType = "range_proof"
)

// Public signal keys. Signals are the only proof fields a verifier ever
// inspects and must never contain the secret inputs.
const (
	SignalVerified        = "verified"
	SignalValid           = "valid"
	SignalError           = "error"
	SignalNetwork         = "network"
	SignalRequesterDID    = "requester_did"
	SignalMinAge          = "min_age"
	SignalMin             = "min"
	SignalMax             = "max"
	SignalCredentialType  = "credential_type"
	SignalIssuerPublicKey = "issuer_public_key"
)

// Signals maps named public outputs (booleans, numbers, strings).
type Signals map[string]any

// Bool returns the named signal as a boolean.
func (s Signals) Bool(key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

// Number returns the named signal as a float64. JSON round-trips turn all
// numbers into float64; native ints are accepted too.
func (s Signals) Number(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// String returns the named signal as a string.
func (s Signals) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// OnChainRef anchors a live proof to the ledger: the transaction that
// recorded it, the single-use contract instance it ran against, and
// optionally the confirming block height.
type OnChainRef struct {
	TxID            string `json:"tx_id,omitempty"`
	InstanceAddress string `json:"instance_address,omitempty"`
	BlockHeight     int64  `json:"block_height,omitempty"`
}

// Proof is the unit of exchange: a statement's asserted truth plus the
// minimum public context needed to check it, without the secret inputs.
type Proof struct {
	StatementType StatementType `json:"statement_type"`
	// ProofBytes is an opaque base64 blob. In placeholder mode it is a
	// self-describing marker; in live mode it is reserved for true proof
	// material and currently carries a pending-integration marker.
	ProofBytes        string      `json:"proof_bytes"`
	PublicSignals     Signals     `json:"public_signals"`
	VerificationKeyID string      `json:"verification_key_id"`
	GeneratedAt       time.Time   `json:"generated_at"`
	OnChainRef        *OnChainRef `json:"on_chain_ref,omitempty"`
}

// NetworkSignal returns the proof's network marker ("live" or "mocked"), or
// empty when absent.
func (p *Proof) NetworkSignal() string {
	v, _ := p.PublicSignals.String(SignalNetwork)
	return v
}

// IsPending reports whether the proof claims to be live but carries no usable
// on-chain anchor. Pending proofs must never verify.
func (p *Proof) IsPending() bool {
	if p.NetworkSignal() != string(network.ModeLive) {
		return false
	}
	return p.OnChainRef == nil || p.OnChainRef.TxID == "" || p.OnChainRef.InstanceAddress == ""
}

// VerificationKeyID names the verification parameters for a statement type in
// the given mode. Placeholder and live proofs for the same statement use
// different keys so one can never masquerade as the other.
func VerificationKeyID(st StatementType, mode network.Mode) string {
	return "vk:" + string(mode) + ":" + string(st)
}

// MarkerBytes builds the self-describing proof-bytes marker for a proof that
// carries no real proof material yet.
func MarkerBytes(st StatementType, mode network.Mode) string {
	scheme := "placeholder"
	if mode == network.ModeLive {
		scheme = "pending"
	}
	marker, _ := json.Marshal(map[string]string{
		"scheme":         scheme,
		"statement_type": string(st),
		"network":        string(mode),
	})
	return base64.StdEncoding.EncodeToString(marker)
}

// FailureProof builds the terminal non-throwing result for invalid generate
// input: empty proof bytes, a false outcome signal under flagKey, and the
// error text. It is a valid proof record so callers can treat it uniformly as
// a proof result, and it can never verify.
func FailureProof(st StatementType, flagKey string, err error) *Proof {
	return &Proof{
		StatementType: st,
		ProofBytes:    "",
		PublicSignals: Signals{
			flagKey:     false,
			SignalError: err.Error(),
		},
		VerificationKeyID: VerificationKeyID(st, network.ModeMocked),
		GeneratedAt:       time.Now().UTC(),
	}
}
