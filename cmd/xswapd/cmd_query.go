package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	swap "github.com/iov-one/xswap/x/xswap"
)

func cmdShow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the swap with given identifier together with the balance of its escrow.
`)
		fl.PrintDefaults()
	}
	var (
		confFl = flConfig(fl)
		idFl   = flSwapID(fl, "id", "Swap identifier, 32 bytes hex encoded. Required.")
	)
	fl.Parse(args)

	a, err := openApp(*confFl)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Coordinator().Get(*idFl)
	if err != nil {
		return fmt.Errorf("cannot get swap: %s", err)
	}
	escrow, err := a.Coordinator().EscrowBalance(*idFl)
	if err != nil {
		return err
	}
	return printJSON(output, struct {
		swap.Record
		Escrow uint64 `json:"escrow_balance"`
	}{
		Record: swap.Record{ID: *idFl, Swap: s},
		Escrow: escrow,
	})
}

func cmdList(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print all swaps, optionally only those in given state.
`)
		fl.PrintDefaults()
	}
	var (
		confFl  = flConfig(fl)
		stateFl = fl.String("state", "", "Only list swaps in this state. One of open or closed.")
	)
	fl.Parse(args)

	state := swap.StateInvalid
	if *stateFl != "" {
		v, ok := swap.State_value["STATE_"+strings.ToUpper(*stateFl)]
		if !ok || swap.State(v) == swap.StateInvalid {
			return fmt.Errorf("unknown state %q", *stateFl)
		}
		state = swap.State(v)
	}

	a, err := openApp(*confFl)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.Coordinator().List(state)
	if err != nil {
		return fmt.Errorf("cannot list swaps: %s", err)
	}
	if records == nil {
		records = []swap.Record{}
	}
	return printJSON(output, records)
}

func cmdEvents(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print all events emitted for the swap with given identifier, in order.
`)
		fl.PrintDefaults()
	}
	var (
		confFl = flConfig(fl)
		idFl   = flSwapID(fl, "id", "Swap identifier, 32 bytes hex encoded. Required.")
	)
	fl.Parse(args)

	a, err := openApp(*confFl)
	if err != nil {
		return err
	}
	defer a.Close()

	events, err := a.Coordinator().Events(*idFl)
	if err != nil {
		return fmt.Errorf("cannot get events: %s", err)
	}
	if events == nil {
		events = []*swap.Event{}
	}
	return printJSON(output, events)
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of given wallet.
`)
		fl.PrintDefaults()
	}
	var (
		confFl = flConfig(fl)
		addrFl = flAddress(fl, "addr", "Wallet address. Required.")
	)
	fl.Parse(args)

	if len(*addrFl) == 0 {
		return fmt.Errorf("wallet address is required")
	}

	a, err := openApp(*confFl)
	if err != nil {
		return err
	}
	defer a.Close()

	balance, err := a.Coordinator().Balance(*addrFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, balance)
	return err
}
