/*
Package xswap implements the escrow side of a cross-chain atomic swap.

The sender opens a swap by locking the principal in an escrow wallet
derived from the swap identifier. Together with the funds the sender
commits to two messages by their content hashes: the claim-reveal and the
refund-reveal. The swap is resolved by whichever of the following happens
first.

1. The claim-reveal is published, signed by the counterpart. The swap gets unlocked and the message becomes public so the
counterpart chain can complete its side. Once the refund grace deadline
has passed the principal can be settled to the receiver.
2. The refund-reveal is published. The principal is returned to the sender.
3. The claim deadline passes without the swap being unlocked. The sender
can nullify the swap and get the principal back. Until the nullify is
applied a late claim-reveal still unlocks the swap.

Every payout closes the swap in the same atomic write that moves the funds.
A closed swap is never deleted and its identifier can never be used again.

There is no timer. Deadlines are evaluated against the block time carried
by the context of each call.
*/
package xswap
