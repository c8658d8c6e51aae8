package crypto

import (
	"bytes"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

const (
	// Secp256k1SignatureSize is the size of a recoverable [R || S || V]
	// signature.
	Secp256k1SignatureSize = 65

	// compactMagic is the offset added to the recovery code in the first
	// byte of a btcec compact signature of an uncompressed key.
	compactMagic = 27
)

// Secp256k1Verifier recovers the signer of a commitment and compares its
// address with the claimed identity.
type Secp256k1Verifier struct{}

var _ Verifier = Secp256k1Verifier{}

// Verify implements Verifier.
func (Secp256k1Verifier) Verify(identity, commitment, signature, message []byte) bool {
	if len(identity) != xswap.AddressLength {
		return false
	}
	if !MatchesCommitment(commitment, message) {
		return false
	}
	pub, err := RecoverSecp256k1(commitment, signature)
	if err != nil {
		return false
	}
	return bytes.Equal(Secp256k1Address(pub), identity)
}

// RecoverSecp256k1 returns the public key that produced given [R || S || V]
// signature of hash. The recovery id V is accepted both as 0/1 and as
// 27/28.
func RecoverSecp256k1(hash, signature []byte) (*btcec.PublicKey, error) {
	if len(hash) != HashSize {
		return nil, errors.Wrapf(errors.ErrInput, "hash must be %d bytes", HashSize)
	}
	if len(signature) != Secp256k1SignatureSize {
		return nil, errors.Wrapf(errors.ErrInput, "signature must be %d bytes", Secp256k1SignatureSize)
	}
	v := signature[64]
	if v >= compactMagic {
		v -= compactMagic
	}
	if v > 3 {
		return nil, errors.Wrapf(errors.ErrInput, "invalid recovery id %d", signature[64])
	}

	compact := make([]byte, Secp256k1SignatureSize)
	compact[0] = compactMagic + v
	copy(compact[1:], signature[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return pub, nil
}

// Secp256k1Address returns the address of given public key: the last 20
// bytes of the keccak256 hash of the uncompressed key without its prefix.
func Secp256k1Address(pub *btcec.PublicKey) xswap.Address {
	raw := pub.SerializeUncompressed()
	h := ContentHash(raw[1:])
	return xswap.Address(h[HashSize-xswap.AddressLength:])
}

// Secp256k1Key is a private key producing recoverable signatures.
type Secp256k1Key struct {
	priv *btcec.PrivateKey
}

var _ Signer = (*Secp256k1Key)(nil)

// GenSecp256k1Key returns a random new private key.
func GenSecp256k1Key() (*Secp256k1Key, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &Secp256k1Key{priv: priv}, nil
}

// Secp256k1KeyFromSeed will deterministically generate a private key from a
// given seed. Use for deterministic keys in test cases.
func Secp256k1KeyFromSeed(seed []byte) *Secp256k1Key {
	h := sha256.Sum256(seed)
	priv, _ := btcec.PrivKeyFromBytes(h[:])
	return &Secp256k1Key{priv: priv}
}

// Secp256k1KeyFromBytes loads a raw 32 byte private key.
func Secp256k1KeyFromBytes(raw []byte) (*Secp256k1Key, error) {
	if len(raw) != btcec.PrivKeyBytesLen {
		return nil, errors.Wrapf(errors.ErrInput, "private key must be %d bytes", btcec.PrivKeyBytesLen)
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return &Secp256k1Key{priv: priv}, nil
}

// Bytes returns the raw 32 byte private key, as accepted by
// Secp256k1KeyFromBytes.
func (k *Secp256k1Key) Bytes() []byte {
	return k.priv.Serialize()
}

// Address returns the address of this key.
func (k *Secp256k1Key) Address() xswap.Address {
	return Secp256k1Address(k.priv.PubKey())
}

// Identity implements Signer. Secp256k1 identities are addresses.
func (k *Secp256k1Key) Identity() []byte {
	return k.Address()
}

// Sign implements Signer and returns a [R || S || V] signature with V being
// 0 or 1.
func (k *Secp256k1Key) Sign(commitment []byte) []byte {
	compact := ecdsa.SignCompact(k.priv, commitment, false)
	sig := make([]byte, Secp256k1SignatureSize)
	copy(sig, compact[1:])
	sig[64] = compact[0] - compactMagic
	return sig
}
