package httptransport

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"zkattest/internal/attest"
	"zkattest/internal/attest/age"
	"zkattest/internal/attest/credential"
	"zkattest/internal/attest/rangeproof"
	domainerrors "zkattest/pkg/domain-errors"
	"zkattest/pkg/identity"
)

// AgeProofRequest is the POST /proofs/age body. Statement-level validation
// (date parsing, threshold sanity) belongs to the engine, which answers with
// a failure proof; the transport checks only what would break addressing the
// request at all.
type AgeProofRequest struct {
	BirthDate    attest.DateValue `json:"birth_date"`
	CurrentDate  attest.DateValue `json:"current_date"`
	MinAge       int              `json:"min_age"`
	RequesterDID string           `json:"requester_did"`
}

// Validate implements httputil.Validatable.
func (r *AgeProofRequest) Validate() error {
	return validateDID(r.RequesterDID)
}

// Input converts the request into the engine's generate input.
func (r *AgeProofRequest) Input() age.Input {
	return age.Input{
		BirthDate:    r.BirthDate,
		CurrentDate:  r.CurrentDate,
		MinAge:       r.MinAge,
		RequesterDID: r.RequesterDID,
	}
}

// CredentialProofRequest is the POST /proofs/credential body. Callers either
// spell out the credential fields or hand over a serialized JWT credential,
// which Normalize folds into the explicit fields. The JWT is never
// cryptographically validated here; its signature is an opaque secret for the
// engine.
type CredentialProofRequest struct {
	CredentialJWT   string           `json:"credential_jwt"`
	CredentialType  string           `json:"credential_type"`
	CredentialHash  string           `json:"credential_hash"`
	IssuerSignature string           `json:"issuer_signature"`
	IssuerPublicKey string           `json:"issuer_public_key"`
	ExpiresAt       attest.DateValue `json:"expires_at"`
	RequesterDID    string           `json:"requester_did"`
}

// Normalize implements httputil.Normalizable. Explicit fields win over the
// JWT's claims so callers can override individual values.
func (r *CredentialProofRequest) Normalize() error {
	if r.CredentialJWT == "" {
		return nil
	}

	token, parts, err := jwt.NewParser().ParseUnverified(r.CredentialJWT, jwt.MapClaims{})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeBadRequest, "credential_jwt is not a well-formed JWT")
	}
	claims, _ := token.Claims.(jwt.MapClaims)

	if r.CredentialType == "" {
		if v, ok := claims["credential_type"].(string); ok {
			r.CredentialType = v
		}
	}
	if r.IssuerPublicKey == "" {
		if v, ok := claims["issuer_public_key"].(string); ok {
			r.IssuerPublicKey = v
		} else if iss, err := claims.GetIssuer(); err == nil && iss != "" {
			r.IssuerPublicKey = iss
		}
	}
	if r.ExpiresAt.IsZero() {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			r.ExpiresAt = attest.DateFromTime(exp.Time)
		}
	}
	if r.CredentialHash == "" {
		r.CredentialHash = identity.Fingerprint(r.CredentialJWT)
	}
	if r.IssuerSignature == "" && len(parts) == 3 {
		r.IssuerSignature = parts[2]
	}
	return nil
}

// Validate implements httputil.Validatable.
func (r *CredentialProofRequest) Validate() error {
	return validateDID(r.RequesterDID)
}

// Input converts the request into the engine's generate input.
func (r *CredentialProofRequest) Input() credential.Input {
	return credential.Input{
		CredentialType:  r.CredentialType,
		CredentialHash:  r.CredentialHash,
		IssuerSignature: r.IssuerSignature,
		IssuerPublicKey: r.IssuerPublicKey,
		ExpiresAt:       r.ExpiresAt,
		RequesterDID:    r.RequesterDID,
	}
}

// RangeProofRequest is the POST /proofs/range body.
type RangeProofRequest struct {
	Value        *int64 `json:"value"`
	Min          int64  `json:"min"`
	Max          int64  `json:"max"`
	RequesterDID string `json:"requester_did"`
}

// Validate implements httputil.Validatable.
func (r *RangeProofRequest) Validate() error {
	return validateDID(r.RequesterDID)
}

// Input converts the request into the engine's generate input.
func (r *RangeProofRequest) Input() rangeproof.Input {
	return rangeproof.Input{
		Value:        r.Value,
		Min:          r.Min,
		Max:          r.Max,
		RequesterDID: r.RequesterDID,
	}
}

// VerifyProofRequest is the POST /proofs/verify body.
type VerifyProofRequest struct {
	Proof       *attest.Proof `json:"proof"`
	ExpectedDID string        `json:"expected_did"`
}

// Validate implements httputil.Validatable.
func (r *VerifyProofRequest) Validate() error {
	if r.Proof == nil {
		return fmt.Errorf("proof is required")
	}
	if r.Proof.StatementType == "" {
		return fmt.Errorf("proof.statement_type is required")
	}
	return validateDID(r.ExpectedDID)
}

func validateDID(did string) error {
	if did == "" {
		return nil
	}
	if !strings.HasPrefix(did, identity.DIDPrefix) {
		return fmt.Errorf("requester DID must start with %q", identity.DIDPrefix)
	}
	return nil
}
