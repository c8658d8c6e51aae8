package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/iov-one/xswap"
	swap "github.com/iov-one/xswap/x/xswap"
)

// flAddress returns an address value that is optionally overwritten by a
// command line argument.
func flAddress(fl *flag.FlagSet, name, usage string) *xswap.Address {
	var a xswap.Address
	fl.Var(&a, name, usage)
	return &a
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized, process is terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = hex.DecodeString(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagbyte)(&b), name, usage)
	return &b
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// flSwapID returns a swap identifier value that must be set using a
// command line argument.
func flSwapID(fl *flag.FlagSet, name, usage string) *swap.SwapID {
	var id swap.SwapID
	fl.Var((*flagSwapID)(&id), name, usage)
	return &id
}

type flagSwapID swap.SwapID

func (id flagSwapID) String() string {
	return swap.SwapID(id).String()
}

func (id *flagSwapID) Set(raw string) error {
	val, err := swap.ParseSwapID(raw)
	if err != nil {
		return err
	}
	*id = flagSwapID(val)
	return nil
}

// flTime returns a block time value. It defaults to the current time and
// can be overwritten with a unix timestamp or an RFC 3339 formatted time.
func flTime(fl *flag.FlagSet, name, usage string) *time.Time {
	t := time.Now()
	fl.Var((*flagtime)(&t), name, usage)
	return &t
}

type flagtime time.Time

func (t flagtime) String() string {
	return time.Time(t).UTC().Format(time.RFC3339)
}

func (t *flagtime) Set(raw string) error {
	if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*t = flagtime(time.Unix(unix, 0))
		return nil
	}
	val, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("time must be a unix timestamp or in RFC 3339 format: %s", err)
	}
	*t = flagtime(val)
	return nil
}
