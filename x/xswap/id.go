package xswap

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// SwapIDLength is the size of a swap identifier in bytes.
const SwapIDLength = 32

// SwapID is an opaque identifier chosen by the sender when opening a swap.
type SwapID [SwapIDLength]byte

// ParseSwapID decodes an identifier from its hex text form.
func ParseSwapID(enc string) (SwapID, error) {
	var id SwapID
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return id, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	if len(raw) != SwapIDLength {
		return id, errors.Wrapf(errors.ErrInput, "swap id must be %d bytes, got %d", SwapIDLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// SwapIDFromBytes returns the identifier stored in raw.
func SwapIDFromBytes(raw []byte) (SwapID, error) {
	var id SwapID
	if len(raw) != SwapIDLength {
		return id, errors.Wrapf(errors.ErrInput, "swap id must be %d bytes, got %d", SwapIDLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// IsZero returns true if no identifier was set.
func (id SwapID) IsZero() bool {
	return id == SwapID{}
}

func (id SwapID) String() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// MarshalText implements encoding.TextMarshaler.
func (id SwapID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SwapID) UnmarshalText(raw []byte) error {
	parsed, err := ParseSwapID(string(raw))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// EscrowAddress returns the address of the wallet holding the principal of
// the swap with given identifier.
func EscrowAddress(id SwapID) xswap.Address {
	return xswap.NewCondition("xswap", "escrow", id[:]).Address()
}
