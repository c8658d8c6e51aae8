package crypto

import (
	"crypto/sha256"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"golang.org/x/crypto/ed25519"
)

// Ed25519Verifier checks ed25519 signatures of a commitment.
type Ed25519Verifier struct{}

var _ Verifier = Ed25519Verifier{}

// Verify implements Verifier.
func (Ed25519Verifier) Verify(identity, commitment, signature, message []byte) bool {
	if len(identity) != ed25519.PublicKeySize {
		return false
	}
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	if !MatchesCommitment(commitment, message) {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(identity), commitment, signature)
}

// Ed25519Key is an ed25519 private key.
type Ed25519Key struct {
	priv ed25519.PrivateKey
}

var _ Signer = (*Ed25519Key)(nil)

// GenEd25519Key returns a random new private key.
func GenEd25519Key() (*Ed25519Key, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &Ed25519Key{priv: priv}, nil
}

// Ed25519KeyFromSeed will deterministically generate a private key from a
// given seed. Use for deterministic keys in test cases.
func Ed25519KeyFromSeed(seed []byte) *Ed25519Key {
	h := sha256.Sum256(seed)
	return &Ed25519Key{priv: ed25519.NewKeyFromSeed(h[:])}
}

// Identity implements Signer. Ed25519 identities are public keys.
func (k *Ed25519Key) Identity() []byte {
	pub := k.priv.Public().(ed25519.PublicKey)
	return []byte(pub)
}

// Address returns the account address owned by this key.
func (k *Ed25519Key) Address() xswap.Address {
	return xswap.NewCondition("sigs", "ed25519", k.Identity()).Address()
}

// Sign implements Signer.
func (k *Ed25519Key) Sign(commitment []byte) []byte {
	return ed25519.Sign(k.priv, commitment)
}
