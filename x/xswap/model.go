package xswap

import (
	"bytes"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
	"golang.org/x/crypto/ed25519"
)

const (
	bucketSwaps  = "xswap"
	bucketEvents = "xswap_ev"

	maxRefSize = 256
)

var (
	_ orm.Model = (*Swap)(nil)
	_ orm.Model = (*Event)(nil)
)

// Validate ensures the Swap is valid.
func (s *Swap) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", s.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", s.Receiver.Validate())
	if s.PrincipalValue == 0 {
		errs = errors.AppendField(errs, "PrincipalValue", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "CounterpartSenderRef", validateRef(s.CounterpartSenderRef))
	errs = errors.AppendField(errs, "CounterpartEscrowRef", validateRef(s.CounterpartEscrowRef))
	errs = errors.AppendField(errs, "ClaimHash", validateHash(s.ClaimHash))
	errs = errors.AppendField(errs, "RefundHash", validateHash(s.RefundHash))
	errs = errors.AppendField(errs, "Signer", validateSigner(s.Signer))
	if s.OpenedAt < 0 {
		errs = errors.AppendField(errs, "OpenedAt", errors.ErrInput)
	}
	if s.ClaimDeadline <= s.OpenedAt {
		errs = errors.AppendField(errs, "ClaimDeadline", errors.ErrInput)
	}
	if s.RefundGraceDeadline <= s.ClaimDeadline {
		errs = errors.AppendField(errs, "RefundGraceDeadline", errors.ErrInput)
	}
	if !s.Unlocked && len(s.RevealedMessage) != 0 {
		errs = errors.AppendField(errs, "RevealedMessage", errors.Wrap(errors.ErrInvalidState, "swap is not unlocked"))
	}
	switch s.State {
	case StateOpen:
		if s.Payee != nil || s.ClosedAt != 0 {
			errs = errors.AppendField(errs, "State", errors.Wrap(errors.ErrInvalidState, "open swap cannot be paid"))
		}
	case StateClosed:
		errs = errors.AppendField(errs, "Payee", s.Payee.Validate())
		if s.ClosedAt < s.OpenedAt {
			errs = errors.AppendField(errs, "ClosedAt", errors.ErrInput)
		}
	default:
		errs = errors.AppendField(errs, "State", errors.Wrapf(errors.ErrInvalidState, "%s cannot be stored", s.State))
	}
	if errs == nil && bytes.Equal(s.ClaimHash, s.RefundHash) {
		errs = errors.Field("RefundHash", errors.ErrInput, "claim and refund hash must differ")
	}
	return errs
}

// Copy returns a deep copy of this swap.
func (s *Swap) Copy() *Swap {
	return &Swap{
		Sender:               s.Sender.Clone(),
		Receiver:             s.Receiver.Clone(),
		PrincipalValue:       s.PrincipalValue,
		CounterpartValue:     s.CounterpartValue,
		CounterpartSenderRef: s.CounterpartSenderRef,
		CounterpartEscrowRef: s.CounterpartEscrowRef,
		ClaimHash:            cloneBytes(s.ClaimHash),
		RefundHash:           cloneBytes(s.RefundHash),
		Signer:               cloneBytes(s.Signer),
		ClaimDeadline:        s.ClaimDeadline,
		RefundGraceDeadline:  s.RefundGraceDeadline,
		Unlocked:             s.Unlocked,
		RevealedMessage:      cloneBytes(s.RevealedMessage),
		State:                s.State,
		OpenedAt:             s.OpenedAt,
		ClosedAt:             s.ClosedAt,
		Payee:                s.Payee.Clone(),
	}
}

// Validate ensures the Event is valid.
func (e *Event) Validate() error {
	var errs error
	if _, ok := EventKind_name[int32(e.Kind)]; !ok || e.Kind == EventInvalid {
		errs = errors.AppendField(errs, "Kind", errors.ErrInput)
	}
	if len(e.SwapID) != SwapIDLength {
		errs = errors.AppendField(errs, "SwapID", errors.ErrInput)
	}
	if e.Sequence < 1 {
		errs = errors.AppendField(errs, "Sequence", errors.ErrInput)
	}
	switch e.Kind {
	case EventOpened:
		errs = errors.AppendField(errs, "Receiver", e.Receiver.Validate())
	case EventClosed:
		errs = errors.AppendField(errs, "Recipient", e.Recipient.Validate())
	}
	return errs
}

func validateHash(h []byte) error {
	if len(h) != crypto.HashSize {
		return errors.Wrapf(errors.ErrInput, "must be %d bytes", crypto.HashSize)
	}
	return nil
}

// validateSigner accepts an empty signer or an identity of a supported
// scheme.
func validateSigner(signer []byte) error {
	switch len(signer) {
	case 0, xswap.AddressLength, ed25519.PublicKeySize:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unsupported identity of %d bytes", len(signer))
	}
}

func validateRef(ref string) error {
	if len(ref) > maxRefSize {
		return errors.Wrapf(errors.ErrInput, "longer than %d", maxRefSize)
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
