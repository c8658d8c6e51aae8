package xswap

import (
	"bytes"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
)

// Guards are the only place where the state, the unlock flag and the
// deadlines of a swap are compared. Each one is evaluated against a single
// reading of the block time.

// isOpen holds while no payout happened.
func isOpen(s *Swap) bool {
	return s.State == StateOpen
}

// canReveal holds while the claim-reveal is accepted.
func canReveal(s *Swap) bool {
	return isOpen(s) && !s.Unlocked
}

// canNullify holds when the claim window passed without an unlock.
func canNullify(s *Swap, now xswap.UnixTime) bool {
	return isOpen(s) && !s.Unlocked && xswap.IsExpired(now, s.ClaimDeadline)
}

// canCancel holds for any open swap. The refund-reveal is a mutual
// agreement and is not bound by time.
func canCancel(s *Swap) bool {
	return isOpen(s)
}

// canSettle holds for an unlocked swap once the grace window passed.
func canSettle(s *Swap, now xswap.UnixTime) bool {
	return isOpen(s) && s.Unlocked && xswap.IsExpired(now, s.RefundGraceDeadline)
}

// revealAccepted returns true if message is the one committed to by
// commitment and the signature was produced by identity. When the swap is
// bound to a signer, identity must be that signer.
func revealAccepted(v crypto.Verifier, s *Swap, commitment, identity, signature, message []byte) bool {
	if len(s.Signer) != 0 && !bytes.Equal(s.Signer, identity) {
		return false
	}
	return v.Verify(identity, commitment, signature, message)
}
