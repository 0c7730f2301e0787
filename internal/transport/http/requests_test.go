package httptransport

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zkattest/internal/attest"
)

func signedCredentialJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-issuer-key"))
	require.NoError(t, err)
	return s
}

func TestCredentialRequestNormalizeFromJWT(t *testing.T) {
	expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := signedCredentialJWT(t, jwt.MapClaims{
		"iss":             "issuer.example",
		"credential_type": "drivers_license",
		"exp":             expiry.Unix(),
	})

	req := &CredentialProofRequest{CredentialJWT: raw}
	require.NoError(t, req.Normalize())

	assert.Equal(t, "drivers_license", req.CredentialType)
	assert.Equal(t, "issuer.example", req.IssuerPublicKey)
	assert.NotEmpty(t, req.IssuerSignature)
	assert.NotEmpty(t, req.CredentialHash)
	assert.NotContains(t, req.CredentialHash, ".", "hash must be a fingerprint, not the JWT itself")

	got, err := req.ExpiresAt.Resolve()
	require.NoError(t, err)
	assert.Equal(t, expiry.Unix(), got.Unix())
}

func TestCredentialRequestExplicitFieldsWin(t *testing.T) {
	raw := signedCredentialJWT(t, jwt.MapClaims{
		"credential_type": "from_jwt",
		"exp":             time.Now().Add(time.Hour).Unix(),
	})

	req := &CredentialProofRequest{
		CredentialJWT:  raw,
		CredentialType: "explicit_type",
	}
	require.NoError(t, req.Normalize())
	assert.Equal(t, "explicit_type", req.CredentialType)
}

func TestCredentialRequestIssuerPublicKeyClaimPreferred(t *testing.T) {
	raw := signedCredentialJWT(t, jwt.MapClaims{
		"iss":               "issuer.example",
		"issuer_public_key": "pk-from-claim",
	})

	req := &CredentialProofRequest{CredentialJWT: raw}
	require.NoError(t, req.Normalize())
	assert.Equal(t, "pk-from-claim", req.IssuerPublicKey)
}

func TestCredentialRequestMalformedJWT(t *testing.T) {
	req := &CredentialProofRequest{CredentialJWT: "not.a-jwt"}
	assert.Error(t, req.Normalize())
}

func TestCredentialRequestWithoutJWTPassesThrough(t *testing.T) {
	req := &CredentialProofRequest{
		CredentialType:  "passport",
		IssuerPublicKey: "pk",
		ExpiresAt:       attest.DateFromString("2030-01-01"),
	}
	require.NoError(t, req.Normalize())
	assert.Equal(t, "passport", req.CredentialType)
	assert.Empty(t, req.CredentialHash)
}

func TestValidateDID(t *testing.T) {
	assert.NoError(t, (&AgeProofRequest{}).Validate())
	assert.NoError(t, (&AgeProofRequest{RequesterDID: "did:ephemeral:abc"}).Validate())
	assert.Error(t, (&AgeProofRequest{RequesterDID: "did:web:example.com"}).Validate())
	assert.Error(t, (&RangeProofRequest{RequesterDID: "bogus"}).Validate())
}

func TestVerifyProofRequestValidate(t *testing.T) {
	assert.Error(t, (&VerifyProofRequest{}).Validate())
	assert.Error(t, (&VerifyProofRequest{Proof: &attest.Proof{}}).Validate())
	assert.NoError(t, (&VerifyProofRequest{
		Proof: &attest.Proof{StatementType: attest.StatementAgeVerification},
	}).Validate())
}
