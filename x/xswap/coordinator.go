package xswap

import (
	"context"
	"fmt"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Coordinator exposes the swap protocol. Every operation is a single unit
// of work on the ledger, evaluated at the block time carried by the
// context.
//
// Operations resolving a swap return false when their precondition does
// not hold or a reveal is not accepted. This is expected traffic and not an
// error. Errors are returned for calls that can never succeed, such as an
// unknown swap identifier, and for storage failures.
type Coordinator struct {
	ledger   *Ledger
	verifier crypto.Verifier
}

// NewCoordinator returns a coordinator resolving reveals with given
// verifier.
func NewCoordinator(ledger *Ledger, verifier crypto.Verifier) *Coordinator {
	return &Coordinator{
		ledger:   ledger,
		verifier: verifier,
	}
}

// Open creates a swap funded by sender. The deadlines are computed from
// the stored configuration.
func (c *Coordinator) Open(ctx context.Context, sender xswap.Address, msg *OpenMsg) error {
	if err := sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "open message")
	}

	err := c.ledger.Exec(ctx, msg.ID, func(u *Unit) error {
		conf, err := LoadConfiguration(u.db)
		if err != nil {
			return err
		}
		now := u.Now()
		return u.Create(&Swap{
			Sender:               sender,
			Receiver:             msg.Receiver,
			PrincipalValue:       msg.PrincipalValue,
			CounterpartValue:     msg.CounterpartValue,
			CounterpartSenderRef: msg.CounterpartSenderRef,
			CounterpartEscrowRef: msg.CounterpartEscrowRef,
			ClaimHash:            msg.ClaimHash,
			RefundHash:           msg.RefundHash,
			Signer:               msg.Signer,
			ClaimDeadline:        now.Add(conf.ClaimWindow.Duration()),
			RefundGraceDeadline:  now.Add(conf.SettlementWindow.Duration()),
		})
	})
	if err != nil {
		return c.failed(ctx, "open", msg.ID, err)
	}
	logger(ctx, msg.ID).Info("swap opened",
		"sender", sender,
		"receiver", msg.Receiver,
		"principal", msg.PrincipalValue)
	return nil
}

// Nullify returns the principal to the sender of a swap that was not
// unlocked when the claim deadline passed.
func (c *Coordinator) Nullify(ctx context.Context, id SwapID) (bool, error) {
	return c.resolve(ctx, "nullify", id, func(u *Unit, s *Swap) (bool, error) {
		if !canNullify(s, u.Now()) {
			return false, nil
		}
		return true, u.MovePrincipal(s.Sender)
	})
}

// Cancel returns the principal to the sender when the refund-reveal
// message, signed by identity, is presented.
func (c *Coordinator) Cancel(ctx context.Context, id SwapID, identity, signature, message []byte) (bool, error) {
	return c.resolve(ctx, "cancel", id, func(u *Unit, s *Swap) (bool, error) {
		if !canCancel(s) {
			return false, nil
		}
		if !revealAccepted(c.verifier, s, s.RefundHash, identity, signature, message) {
			logger(ctx, id).Debug("refund reveal rejected", "identity", fmt.Sprintf("%X", identity))
			return false, nil
		}
		return true, u.MovePrincipal(s.Sender)
	})
}

// Swap unlocks the swap when the claim-reveal message, signed by identity,
// is presented while the swap is open and locked. Past the claim deadline
// it races with Nullify and the first one applied wins. The message is
// published on the record and in the Revealed event.
func (c *Coordinator) Swap(ctx context.Context, id SwapID, identity, signature, message []byte) (bool, error) {
	return c.resolve(ctx, "swap", id, func(u *Unit, s *Swap) (bool, error) {
		if !canReveal(s) {
			return false, nil
		}
		if !revealAccepted(c.verifier, s, s.ClaimHash, identity, signature, message) {
			logger(ctx, id).Debug("claim reveal rejected", "identity", fmt.Sprintf("%X", identity))
			return false, nil
		}
		return true, u.Unlock(message)
	})
}

// Settle pays the principal to the receiver of an unlocked swap once the
// settlement window passed.
func (c *Coordinator) Settle(ctx context.Context, id SwapID) (bool, error) {
	return c.resolve(ctx, "settle", id, func(u *Unit, s *Swap) (bool, error) {
		if !canSettle(s, u.Now()) {
			return false, nil
		}
		return true, u.MovePrincipal(s.Receiver)
	})
}

// resolve runs fn for an existing swap and logs the outcome.
func (c *Coordinator) resolve(ctx context.Context, op string, id SwapID, fn func(*Unit, *Swap) (bool, error)) (bool, error) {
	var (
		done bool
		now  xswap.UnixTime
	)
	err := c.ledger.Exec(ctx, id, func(u *Unit) error {
		now = u.Now()
		s, err := u.Swap()
		if err != nil {
			return err
		}
		done, err = fn(u, s)
		return err
	})
	if err != nil {
		return false, c.failed(ctx, op, id, err)
	}
	if done {
		logger(ctx, id).Info("swap "+op, "time", now)
	} else {
		logger(ctx, id).Debug(op + " precondition not met")
	}
	return done, nil
}

func (c *Coordinator) failed(ctx context.Context, op string, id SwapID, err error) error {
	switch {
	case errors.ErrDatabase.Is(err), errors.ErrModel.Is(err), errors.ErrHuman.Is(err), errors.ErrPanic.Is(err):
		logger(ctx, id).Error(op+" failed", "err", err)
	default:
		logger(ctx, id).Debug(op+" rejected", "err", err)
	}
	return err
}

// Get returns a copy of the swap with given id.
func (c *Coordinator) Get(id SwapID) (*Swap, error) {
	return c.ledger.Read(id)
}

// Balance returns the funds held by given wallet.
func (c *Coordinator) Balance(addr xswap.Address) (uint64, error) {
	return c.ledger.Balance(addr)
}

// EscrowBalance returns the funds held in escrow by given swap.
func (c *Coordinator) EscrowBalance(id SwapID) (uint64, error) {
	return c.ledger.EscrowBalance(id)
}

// Events returns the journal of given swap, oldest first.
func (c *Coordinator) Events(id SwapID) ([]*Event, error) {
	return c.ledger.Events(id)
}

// List returns the swaps in given state, or all of them for StateInvalid.
func (c *Coordinator) List(state State) ([]Record, error) {
	return c.ledger.List(state)
}

// Subscribe registers a listener notified after every committed
// transition.
func (c *Coordinator) Subscribe(ln Listener) {
	c.ledger.Subscribe(ln)
}

func logger(ctx context.Context, id SwapID) log.Logger {
	return xswap.GetLogger(ctx).With("module", "xswap", "swap", id)
}
