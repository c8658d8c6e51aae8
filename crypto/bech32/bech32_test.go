package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/xswap/errors"
)

func TestBech32EncodeDecode(t *testing.T) {
	// bech32  -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected hrp: %q", hrp)
	}

	if !bytes.Equal(want, payload) {
		t.Logf("want %d", want)
		t.Logf("got  %d", payload)
		t.Fatal("invalid decode")
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	if string(raw) != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestBech32RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 20)
	raw, err := Encode("xswap", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "xswap" || !bytes.Equal(payload, got) {
		t.Fatalf("round trip mismatch: %q %x", hrp, got)
	}
}

func TestBech32DecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"bad checksum": "tiov1w3jhxapdwpshjmr0v9jqymqq4z",
		"no separator": "tiovw3jhxapdwpshjmr0v9jqymqq4y",
		"empty":        "",
		"mixed case":   "tiov1W3jhxapdwpshjmr0v9jqymqq4y",
	}
	for testName, enc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, _, err := Decode(enc)
			if !errors.ErrInput.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
