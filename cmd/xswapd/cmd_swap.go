package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/xswap/crypto"
	swap "github.com/iov-one/xswap/x/xswap"
)

func cmdOpen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open a new swap. The principal value is moved from the sender wallet into
the escrow of the swap. Deadlines are computed from the block time and the
stored swap configuration.

Commitments can be given either as hashes or as the messages they commit to.
`)
		fl.PrintDefaults()
	}
	var (
		confFl       = flConfig(fl)
		idFl         = flSwapID(fl, "id", "Swap identifier, 32 bytes hex encoded. Required.")
		senderFl     = flAddress(fl, "sender", "Address of the wallet funding the swap. Required.")
		receiverFl   = flAddress(fl, "receiver", "Address receiving the principal on a successful swap. Required.")
		principalFl  = fl.Uint64("principal", 0, "Value moved into the escrow.")
		counterFl    = fl.Uint64("counterpart", 0, "Value locked on the counterpart chain.")
		senderRefFl  = fl.String("sender-ref", "", "Counterpart chain address of the sender.")
		escrowRefFl  = fl.String("escrow-ref", "", "Counterpart chain escrow address.")
		claimHashFl  = flHex(fl, "claim-hash", "", "Commitment to the claim message, hex encoded.")
		refundHashFl = flHex(fl, "refund-hash", "", "Commitment to the refund message, hex encoded.")
		claimFl      = fl.String("claim", "", "Claim message. Used to compute the claim commitment if -claim-hash is not given.")
		refundFl     = fl.String("refund", "", "Refund message. Used to compute the refund commitment if -refund-hash is not given.")
		signerFl     = flHex(fl, "signer", "", "Optional identity that reveals must be signed by, hex encoded.")
		timeFl       = flTime(fl, "time", "Block time, as a unix timestamp or in RFC 3339 format.")
	)
	fl.Parse(args)

	msg := &swap.OpenMsg{
		ID:                   *idFl,
		Receiver:             *receiverFl,
		PrincipalValue:       *principalFl,
		CounterpartValue:     *counterFl,
		CounterpartSenderRef: *senderRefFl,
		CounterpartEscrowRef: *escrowRefFl,
		ClaimHash:            commitment(*claimHashFl, *claimFl),
		RefundHash:           commitment(*refundHashFl, *refundFl),
		Signer:               *signerFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid swap: %s", err)
	}

	a, err := openApp(*confFl)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := a.Context(context.Background(), *timeFl)
	if err := a.Coordinator().Open(ctx, *senderFl, msg); err != nil {
		return fmt.Errorf("cannot open swap: %s", err)
	}
	s, err := a.Coordinator().Get(msg.ID)
	if err != nil {
		return err
	}
	return printJSON(output, swap.Record{ID: msg.ID, Swap: s})
}

// commitment returns the hash if given, otherwise the commitment to given
// message. Nothing is returned when both are empty.
func commitment(hash []byte, message string) []byte {
	if len(hash) != 0 || message == "" {
		return hash
	}
	return crypto.ContentHash([]byte(message))
}

func cmdSwap(input io.Reader, output io.Writer, args []string) error {
	return revealCmd(output, args, "swap", `
Reveal the claim message and release the principal to the receiver. Allowed
while the swap is open and locked. After the claim deadline it competes with
nullify.
`, (*swap.Coordinator).Swap)
}

func cmdCancel(input io.Reader, output io.Writer, args []string) error {
	return revealCmd(output, args, "cancel", `
Reveal the refund message and return the principal to the sender. Allowed
at any time while the swap is open, including after an unlock.
`, (*swap.Coordinator).Cancel)
}

// revealCmd implements the commands that resolve a swap by revealing a
// signed message.
func revealCmd(output io.Writer, args []string, name, help string, fn func(c *swap.Coordinator, ctx context.Context, id swap.SwapID, identity, signature, message []byte) (bool, error)) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fl.PrintDefaults()
	}
	var (
		confFl      = flConfig(fl)
		idFl        = flSwapID(fl, "id", "Swap identifier, 32 bytes hex encoded. Required.")
		identityFl  = flHex(fl, "identity", "", "Identity of the signer, hex encoded.")
		signatureFl = flHex(fl, "signature", "", "Signature of the message commitment, hex encoded.")
		messageFl   = fl.String("message", "", "Revealed message.")
		timeFl      = flTime(fl, "time", "Block time, as a unix timestamp or in RFC 3339 format.")
	)
	fl.Parse(args)

	return resolve(output, *confFl, name, *idFl, *timeFl, func(c *swap.Coordinator, ctx context.Context) (bool, error) {
		return fn(c, ctx, *idFl, *identityFl, *signatureFl, []byte(*messageFl))
	})
}

func cmdNullify(input io.Reader, output io.Writer, args []string) error {
	return expireCmd(output, args, "nullify", `
Return the principal of an expired swap that was never unlocked to the
sender. Allowed once the claim deadline has passed.
`, (*swap.Coordinator).Nullify)
}

func cmdSettle(input io.Reader, output io.Writer, args []string) error {
	return expireCmd(output, args, "settle", `
Release the principal of an unlocked swap to the receiver. Allowed once the
refund grace deadline has passed.
`, (*swap.Coordinator).Settle)
}

// expireCmd implements the commands that resolve a swap once a deadline
// has passed.
func expireCmd(output io.Writer, args []string, name, help string, fn func(*swap.Coordinator, context.Context, swap.SwapID) (bool, error)) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fl.PrintDefaults()
	}
	var (
		confFl = flConfig(fl)
		idFl   = flSwapID(fl, "id", "Swap identifier, 32 bytes hex encoded. Required.")
		timeFl = flTime(fl, "time", "Block time, as a unix timestamp or in RFC 3339 format.")
	)
	fl.Parse(args)

	return resolve(output, *confFl, name, *idFl, *timeFl, func(c *swap.Coordinator, ctx context.Context) (bool, error) {
		return fn(c, ctx, *idFl)
	})
}

// resolve runs a resolving operation and prints the resulting swap. A swap
// that was not resolved because its conditions are not met is not an error.
func resolve(output io.Writer, confPath, name string, id swap.SwapID, now time.Time, fn func(*swap.Coordinator, context.Context) (bool, error)) error {
	if id.IsZero() {
		return fmt.Errorf("swap id is required")
	}
	a, err := openApp(confPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := fn(a.Coordinator(), a.Context(context.Background(), now))
	if err != nil {
		return fmt.Errorf("cannot %s swap: %s", name, err)
	}
	s, err := a.Coordinator().Get(id)
	if err != nil {
		return err
	}
	return printJSON(output, struct {
		Resolved bool `json:"resolved"`
		swap.Record
	}{
		Resolved: ok,
		Record:   swap.Record{ID: id, Swap: s},
	})
}
