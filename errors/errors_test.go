package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrAlreadyOpen,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"successful comparison to a double wrapped error": {
			a:      ErrInvalidState,
			b:      Wrap(Wrapf(ErrInvalidState, "state %d", 2), "close"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrInput,
			wantIs: false,
		},
		"a grouped error matches any member": {
			a:      ErrAmount,
			b:      Append(ErrInput, Wrap(ErrAmount, "zero")),
			wantIs: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - %t", got)
			}
		})
	}
}

func TestRegisterCodeReuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering an already used code must panic")
		}
	}()
	Register(ErrNotFound.Code(), "duplicate")
}

func TestCode(t *testing.T) {
	if got := Code(nil); got != 0 {
		t.Fatalf("want 0 for nil, got %d", got)
	}
	if got := Code(Wrap(ErrAlreadyOpen, "swap")); got != ErrAlreadyOpen.Code() {
		t.Fatalf("want %d, got %d", ErrAlreadyOpen.Code(), got)
	}
	if got := Code(stdlib.New("plain")); got != 1 {
		t.Fatalf("want internal code, got %d", got)
	}
}

func TestWrapAttachesStackOnce(t *testing.T) {
	err := Wrap(Wrap(ErrDatabase, "inner"), "outer")
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "outer: inner: database") {
		t.Fatalf("unexpected message: %s", full)
	}
	if strings.Count(full, "TestWrapAttachesStackOnce") != 1 {
		t.Fatalf("want a single stack trace, got\n%s", full)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}
