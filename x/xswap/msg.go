package xswap

import (
	"bytes"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// OpenMsg holds the arguments of opening a swap. The sender is not part of
// the message, it is the caller of Open.
type OpenMsg struct {
	ID                   SwapID        `json:"id"`
	Receiver             xswap.Address `json:"receiver"`
	PrincipalValue       uint64        `json:"principal_value"`
	CounterpartValue     uint64        `json:"counterpart_value"`
	CounterpartSenderRef string        `json:"counterpart_sender_ref"`
	CounterpartEscrowRef string        `json:"counterpart_escrow_ref"`
	ClaimHash            []byte        `json:"claim_hash"`
	RefundHash           []byte        `json:"refund_hash"`
	// Signer optionally restricts the identity accepted for both reveal
	// signatures.
	Signer []byte `json:"signer,omitempty"`
}

// Validate makes sure basic rules are enforced upon the input data.
func (m *OpenMsg) Validate() error {
	var errs error
	if m.ID.IsZero() {
		errs = errors.AppendField(errs, "ID", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	if m.PrincipalValue == 0 {
		errs = errors.AppendField(errs, "PrincipalValue", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "CounterpartSenderRef", validateRef(m.CounterpartSenderRef))
	errs = errors.AppendField(errs, "CounterpartEscrowRef", validateRef(m.CounterpartEscrowRef))
	errs = errors.AppendField(errs, "ClaimHash", validateHash(m.ClaimHash))
	errs = errors.AppendField(errs, "RefundHash", validateHash(m.RefundHash))
	if len(m.ClaimHash) != 0 && bytes.Equal(m.ClaimHash, m.RefundHash) {
		errs = errors.AppendField(errs, "RefundHash", errors.Wrap(errors.ErrInput, "must differ from claim hash"))
	}
	errs = errors.AppendField(errs, "Signer", validateSigner(m.Signer))
	return errs
}
