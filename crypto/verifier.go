package crypto

import (
	"github.com/iov-one/xswap"
	"golang.org/x/crypto/ed25519"
)

// Verifier validates a secret-reveal. Implementations must be side effect
// free and safe for concurrent use.
type Verifier interface {
	// Verify returns true if the content hash of message equals commitment
	// and signature is a valid signature over the commitment produced by
	// identity.
	Verify(identity, commitment, signature, message []byte) bool
}

// Signer produces signatures accepted by the matching Verifier.
type Signer interface {
	// Identity returns the public identity that the signatures are
	// verified against.
	Identity() []byte
	// Sign returns the signature of given commitment.
	Sign(commitment []byte) []byte
}

// MultiVerifier dispatches verification to the scheme matching the identity
// size: addresses are verified as secp256k1, public keys as ed25519.
type MultiVerifier struct {
	Secp256k1 Verifier
	Ed25519   Verifier
}

var _ Verifier = MultiVerifier{}

// NewVerifier returns a verifier accepting both supported schemes.
func NewVerifier() MultiVerifier {
	return MultiVerifier{
		Secp256k1: Secp256k1Verifier{},
		Ed25519:   Ed25519Verifier{},
	}
}

// Verify implements Verifier.
func (m MultiVerifier) Verify(identity, commitment, signature, message []byte) bool {
	switch len(identity) {
	case xswap.AddressLength:
		return m.Secp256k1 != nil && m.Secp256k1.Verify(identity, commitment, signature, message)
	case ed25519.PublicKeySize:
		return m.Ed25519 != nil && m.Ed25519.Verify(identity, commitment, signature, message)
	default:
		return false
	}
}
