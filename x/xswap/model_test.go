package xswap

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/xswaptest"
	"github.com/iov-one/xswap/xswaptest/assert"
)

func TestSwapValidate(t *testing.T) {
	sender := xswaptest.RandomAddr(t)

	cases := map[string]struct {
		mutate    func(*Swap)
		wantField string
		wantErr   *errors.Error
	}{
		"open": {
			mutate: func(*Swap) {},
		},
		"unlocked": {
			mutate: func(s *Swap) {
				s.Unlocked = true
				s.RevealedMessage = []byte("claim")
			},
		},
		"closed": {
			mutate: func(s *Swap) {
				s.State = StateClosed
				s.Payee = sender
				s.ClosedAt = 700
			},
		},
		"closed without payee": {
			mutate: func(s *Swap) {
				s.State = StateClosed
				s.ClosedAt = 700
			},
			wantField: "Payee",
			wantErr:   errors.ErrInput,
		},
		"open with payee": {
			mutate: func(s *Swap) {
				s.Payee = sender
			},
			wantField: "State",
			wantErr:   errors.ErrInvalidState,
		},
		"invalid state": {
			mutate: func(s *Swap) {
				s.State = StateInvalid
			},
			wantField: "State",
			wantErr:   errors.ErrInvalidState,
		},
		"message revealed while locked": {
			mutate: func(s *Swap) {
				s.RevealedMessage = []byte("claim")
			},
			wantField: "RevealedMessage",
			wantErr:   errors.ErrInvalidState,
		},
		"grace deadline before claim deadline": {
			mutate: func(s *Swap) {
				s.RefundGraceDeadline = s.ClaimDeadline
			},
			wantField: "RefundGraceDeadline",
			wantErr:   errors.ErrInput,
		},
		"claim deadline not after open": {
			mutate: func(s *Swap) {
				s.ClaimDeadline = s.OpenedAt
			},
			wantField: "ClaimDeadline",
			wantErr:   errors.ErrInput,
		},
		"zero principal": {
			mutate: func(s *Swap) {
				s.PrincipalValue = 0
			},
			wantField: "PrincipalValue",
			wantErr:   errors.ErrAmount,
		},
		"equal hashes": {
			mutate: func(s *Swap) {
				s.RefundHash = s.ClaimHash
			},
			wantField: "RefundHash",
			wantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := &Swap{
				Sender:              sender,
				Receiver:            xswaptest.RandomAddr(t),
				PrincipalValue:      10,
				ClaimHash:           crypto.ContentHash([]byte("claim")),
				RefundHash:          crypto.ContentHash([]byte("refund")),
				OpenedAt:            0,
				ClaimDeadline:       600,
				RefundGraceDeadline: 1200,
				State:               StateOpen,
			}
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestSwapEncoding(t *testing.T) {
	s := &Swap{
		Sender:               xswaptest.RandomAddr(t),
		Receiver:             xswaptest.RandomAddr(t),
		PrincipalValue:       10,
		CounterpartValue:     3,
		CounterpartSenderRef: "sender",
		CounterpartEscrowRef: "escrow",
		ClaimHash:            crypto.ContentHash([]byte("claim")),
		RefundHash:           crypto.ContentHash([]byte("refund")),
		ClaimDeadline:        600,
		RefundGraceDeadline:  1200,
		Unlocked:             true,
		RevealedMessage:      []byte("claim"),
		State:                StateClosed,
		OpenedAt:             1,
		ClosedAt:             1300,
	}
	s.Payee = s.Receiver

	raw, err := proto.Marshal(s)
	assert.Nil(t, err)
	var got Swap
	assert.Nil(t, proto.Unmarshal(raw, &got))
	assert.Equal(t, s, &got)
	assert.Nil(t, got.Validate())

	cpy := got.Copy()
	assert.Equal(t, &got, cpy)
	cpy.Payee[0]++
	cpy.ClaimHash[0]++
	if got.Payee.Equals(cpy.Payee) {
		t.Fatal("copy shares the payee")
	}
	if xswap.Address(got.ClaimHash).Equals(cpy.ClaimHash) {
		t.Fatal("copy shares the claim hash")
	}
}

func TestEventValidate(t *testing.T) {
	id := swapID("event")
	valid := Event{Kind: EventClosed, SwapID: id[:], Sequence: 1, Recipient: xswaptest.RandomAddr(t)}
	assert.Nil(t, valid.Validate())

	noRecipient := valid
	noRecipient.Recipient = nil
	assert.FieldError(t, noRecipient.Validate(), "Recipient", errors.ErrInput)

	unknown := valid
	unknown.Kind = EventKind(42)
	assert.FieldError(t, unknown.Validate(), "Kind", errors.ErrInput)

	noSeq := valid
	noSeq.Sequence = 0
	assert.FieldError(t, noSeq.Validate(), "Sequence", errors.ErrInput)
}
