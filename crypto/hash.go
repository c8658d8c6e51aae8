package crypto

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// HashSize is the size of a content hash in bytes.
const HashSize = 32

// ContentHash returns the keccak256 digest of given message. This is the
// commitment stored with a swap for each of its reveal messages.
func ContentHash(message []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	// Write on a hash never returns an error.
	_, _ = h.Write(message)
	return h.Sum(nil)
}

// MatchesCommitment returns true if the content hash of the message is equal
// to given commitment.
func MatchesCommitment(commitment, message []byte) bool {
	if len(commitment) != HashSize {
		return false
	}
	return subtle.ConstantTimeCompare(commitment, ContentHash(message)) == 1
}
