package model

import (
	"errors"
	"fmt"

	"github.com/nero-extensions/kitsu/internal/errcode"
)

// The three failure kinds the client can surface. Every error returned
// by the request builder, the client and the response reader is an
// *Error tagged with exactly one of these, so callers can match with
// errors.Is.
var (
	ErrSerialization = errors.New("JSON serialization error")
	ErrHeader        = errors.New("header error")
	ErrTransport     = errors.New("HTTP error")
)

// Error is the single error type of the client API.
type Error struct {
	Kind error // one of ErrSerialization, ErrHeader, ErrTransport
	Err  error // underlying cause

	// Code holds the transport error code when Kind is ErrTransport.
	Code errcode.Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// TransportCode reports the transport code carried by this error, if
// any. It feeds [errcode.From] at the extension boundary.
func (e *Error) TransportCode() (errcode.Code, bool) {
	if e.Kind == ErrTransport {
		return e.Code, true
	}
	return errcode.Code{}, false
}

// TransportError wraps a transport code into the client error type.
func TransportError(code errcode.Code) *Error {
	return &Error{Kind: ErrTransport, Err: code, Code: code}
}

func serializationError(err error) *Error {
	return &Error{Kind: ErrSerialization, Err: err}
}

func headerError(err error) *Error {
	return &Error{Kind: ErrHeader, Err: err}
}
