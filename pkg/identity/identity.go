// Package identity provides ephemeral requester identifiers and
// privacy-preserving fingerprints. Identifiers are single-use: a fresh DID is
// minted per proof request so two verifiers cannot correlate proofs to the
// same subject.
package identity

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// DIDPrefix is the method prefix for ephemeral identifiers minted here.
const DIDPrefix = "did:ephemeral:"

// NewEphemeralDID mints a single-use decentralized identifier. It carries no
// key material; it only binds one proof to one claimed requester.
func NewEphemeralDID() string {
	return DIDPrefix + uuid.NewString()
}

// IsEphemeralDID reports whether s looks like an identifier minted by
// NewEphemeralDID.
func IsEphemeralDID(s string) bool {
	rest, ok := strings.CutPrefix(s, DIDPrefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}

// Fingerprint returns a short SHA3-256 digest of the given data, hex encoded.
// Used for cardinality-safe log and audit identifiers of secrets (credential
// blobs, signatures) that must never appear in clear text.
func Fingerprint(data string) string {
	sum := sha3.Sum256([]byte(data))
	return hex.EncodeToString(sum[:8])
}
