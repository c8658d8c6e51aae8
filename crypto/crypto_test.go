package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/xswap/xswaptest/assert"
)

func TestContentHash(t *testing.T) {
	want, _ := hex.DecodeString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	assert.Equal(t, want, ContentHash(nil))
	assert.Equal(t, want, ContentHash([]byte{}))

	msg := []byte("counterpart transaction")
	if !MatchesCommitment(ContentHash(msg), msg) {
		t.Fatal("commitment must match its message")
	}
	if MatchesCommitment(ContentHash(msg), []byte("counterpart transaction!")) {
		t.Fatal("commitment must not match a different message")
	}
	if MatchesCommitment(ContentHash(msg)[:31], msg) {
		t.Fatal("truncated commitment must not match")
	}
}

func TestSecp256k1Address(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 1
	key, err := Secp256k1KeyFromBytes(raw)
	assert.Nil(t, err)
	want, _ := hex.DecodeString("7E5F4552091A69125D5DFCB7B8C2659029395BDF")
	assert.Equal(t, want, key.Identity())
	assert.Equal(t, raw, key.Bytes())

	_, err = Secp256k1KeyFromBytes(raw[:31])
	if err == nil {
		t.Fatal("short private key must be rejected")
	}
}

func TestSecp256k1Verify(t *testing.T) {
	key := Secp256k1KeyFromSeed([]byte("alice"))
	other := Secp256k1KeyFromSeed([]byte("bob"))

	msg := []byte("refund transaction")
	commitment := ContentHash(msg)
	sig := key.Sign(commitment)
	assert.Equal(t, Secp256k1SignatureSize, len(sig))

	withMagic := append([]byte{}, sig...)
	withMagic[64] += compactMagic

	tampered := append([]byte{}, sig...)
	tampered[10] ^= 0x01

	badV := append([]byte{}, sig...)
	badV[64] = 9

	cases := map[string]struct {
		identity   []byte
		commitment []byte
		signature  []byte
		message    []byte
		want       bool
	}{
		"valid signature": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  sig,
			message:    msg,
			want:       true,
		},
		"recovery id with offset": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  withMagic,
			message:    msg,
			want:       true,
		},
		"wrong identity": {
			identity:   other.Identity(),
			commitment: commitment,
			signature:  sig,
			message:    msg,
			want:       false,
		},
		"message not matching commitment": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  sig,
			message:    []byte("another transaction"),
			want:       false,
		},
		"signature of another commitment": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  key.Sign(ContentHash([]byte("another transaction"))),
			message:    msg,
			want:       false,
		},
		"tampered signature": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  tampered,
			message:    msg,
			want:       false,
		},
		"invalid recovery id": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  badV,
			message:    msg,
			want:       false,
		},
		"short signature": {
			identity:   key.Identity(),
			commitment: commitment,
			signature:  sig[:64],
			message:    msg,
			want:       false,
		},
		"short identity": {
			identity:   key.Identity()[:19],
			commitment: commitment,
			signature:  sig,
			message:    msg,
			want:       false,
		},
		"nothing": {
			want: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := Secp256k1Verifier{}.Verify(tc.identity, tc.commitment, tc.signature, tc.message)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEd25519Verify(t *testing.T) {
	key := Ed25519KeyFromSeed([]byte("alice"))
	other := Ed25519KeyFromSeed([]byte("bob"))

	msg := []byte("claim transaction")
	commitment := ContentHash(msg)
	sig := key.Sign(commitment)

	tampered := append([]byte{}, sig...)
	tampered[0] ^= 0x01

	cases := map[string]struct {
		identity  []byte
		signature []byte
		message   []byte
		want      bool
	}{
		"valid signature":   {identity: key.Identity(), signature: sig, message: msg, want: true},
		"wrong identity":    {identity: other.Identity(), signature: sig, message: msg, want: false},
		"wrong message":     {identity: key.Identity(), signature: sig, message: []byte("x"), want: false},
		"tampered":          {identity: key.Identity(), signature: tampered, message: msg, want: false},
		"short signature":   {identity: key.Identity(), signature: sig[:63], message: msg, want: false},
		"address as author": {identity: key.Address(), signature: sig, message: msg, want: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := Ed25519Verifier{}.Verify(tc.identity, commitment, tc.signature, tc.message)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMultiVerifier(t *testing.T) {
	secp := Secp256k1KeyFromSeed([]byte("secp"))
	ed := Ed25519KeyFromSeed([]byte("ed"))

	msg := []byte("reveal")
	commitment := ContentHash(msg)

	v := NewVerifier()
	if !v.Verify(secp.Identity(), commitment, secp.Sign(commitment), msg) {
		t.Fatal("secp256k1 signature rejected")
	}
	if !v.Verify(ed.Identity(), commitment, ed.Sign(commitment), msg) {
		t.Fatal("ed25519 signature rejected")
	}
	if v.Verify(ed.Identity(), commitment, secp.Sign(commitment), msg) {
		t.Fatal("signature of another scheme accepted")
	}
	if v.Verify([]byte("short"), commitment, secp.Sign(commitment), msg) {
		t.Fatal("unknown identity size accepted")
	}

	secpOnly := MultiVerifier{Secp256k1: Secp256k1Verifier{}}
	if secpOnly.Verify(ed.Identity(), commitment, ed.Sign(commitment), msg) {
		t.Fatal("disabled scheme accepted")
	}
}

func TestGeneratedKeysAreUnique(t *testing.T) {
	a, err := GenSecp256k1Key()
	assert.Nil(t, err)
	b, err := GenSecp256k1Key()
	assert.Nil(t, err)
	if string(a.Identity()) == string(b.Identity()) {
		t.Fatal("identities must differ")
	}

	c, err := GenEd25519Key()
	assert.Nil(t, err)
	d, err := GenEd25519Key()
	assert.Nil(t, err)
	if string(c.Identity()) == string(d.Identity()) {
		t.Fatal("identities must differ")
	}
}
