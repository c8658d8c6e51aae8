package xswaptest

import (
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
)

// Key is a signing key together with the address it controls.
type Key interface {
	crypto.Signer
	Address() xswap.Address
}

// NewSecp256k1Key returns a fresh secp256k1 key. Its identity is the
// address.
func NewSecp256k1Key(t testing.TB) Key {
	t.Helper()
	k, err := crypto.GenSecp256k1Key()
	if err != nil {
		t.Fatalf("cannot generate secp256k1 key: %s", err)
	}
	return k
}

// NewEd25519Key returns a fresh ed25519 key. Its identity is the public key.
func NewEd25519Key(t testing.TB) Key {
	t.Helper()
	k, err := crypto.GenEd25519Key()
	if err != nil {
		t.Fatalf("cannot generate ed25519 key: %s", err)
	}
	return k
}

// Reveal returns a message together with its commitment and a signature
// over that commitment produced by given key.
func Reveal(k crypto.Signer, message string) (msg, commitment, signature []byte) {
	msg = []byte(message)
	commitment = crypto.ContentHash(msg)
	return msg, commitment, k.Sign(commitment)
}
