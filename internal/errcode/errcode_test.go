package errcode_test

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/nero-extensions/kitsu/internal/errcode"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind errcode.Kind
	}{
		"DNS":        {&net.DNSError{Err: "no such host", Name: "nowhere.invalid"}, errcode.DNSError},
		"Refused":    {fmt.Errorf("dial: %w", syscall.ECONNREFUSED), errcode.ConnectionRefused},
		"Reset":      {fmt.Errorf("read: %w", syscall.ECONNRESET), errcode.ConnectionTerminated},
		"EOF":        {io.ErrUnexpectedEOF, errcode.ConnectionTerminated},
		"ClosedConn": {net.ErrClosed, errcode.ConnectionTerminated},
		"Timeout":    {timeoutErr{}, errcode.ConnectionTimeout},
		"Malformed":  {errors.New("malformed HTTP response"), errcode.HTTPProtocolError},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			if got := errcode.Classify(c.err); got.Kind != c.kind {
				t.Errorf("Classify(%v).Kind = %v, want %v", c.err, got.Kind, c.kind)
			}
		})
	}
}

func TestFromRoundTripsCodes(t *testing.T) {
	code := errcode.Code{Kind: errcode.ConnectionRefused, Context: "dial tcp 127.0.0.1:1"}

	if got := errcode.From(code); got != code {
		t.Errorf("From(code) = %v, want the code unchanged", got)
	}
	wrapped := fmt.Errorf("search failed: %w", code)
	if got := errcode.From(wrapped); got != code {
		t.Errorf("From(wrapped code) = %v, want the code unchanged", got)
	}
}

func TestFromCollapsesOtherErrors(t *testing.T) {
	got := errcode.From(errors.New("schema mismatch"))
	if got.Kind != errcode.InternalError {
		t.Errorf("kind = %v, want InternalError", got.Kind)
	}
	if got.Context != "schema mismatch" {
		t.Errorf("context = %q, want the rendered message", got.Context)
	}
}

func TestCodeError(t *testing.T) {
	code := errcode.Code{Kind: errcode.DNSError, Context: "nowhere.invalid"}
	if code.Error() != "DNS error: nowhere.invalid" {
		t.Errorf("Error() = %q", code.Error())
	}
	var target errcode.Code
	if !errors.As(fmt.Errorf("wrap: %w", code), &target) || target != code {
		t.Error("Code should survive wrapping")
	}
}
