// Package errcode models the transport error codes exchanged with the
// extension host. A [Code] is what crosses the extension boundary: the
// client's typed errors are flattened into one through [From].
package errcode

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"syscall"
)

type Kind int

const (
	DNSError Kind = iota
	ConnectionRefused
	ConnectionTimeout
	ConnectionTerminated
	TLSProtocolError
	TLSCertificateError
	HTTPProtocolError
	InternalError
)

var kindNames = map[Kind]string{
	DNSError:             "DNS error",
	ConnectionRefused:    "connection refused",
	ConnectionTimeout:    "connection timeout",
	ConnectionTerminated: "connection terminated",
	TLSProtocolError:     "TLS protocol error",
	TLSCertificateError:  "TLS certificate error",
	HTTPProtocolError:    "HTTP protocol error",
	InternalError:        "internal error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Code is a transport-level error code plus optional human context.
type Code struct {
	Kind    Kind
	Context string
}

func (c Code) Error() string {
	if c.Context == "" {
		return c.Kind.String()
	}
	return c.Kind.String() + ": " + c.Context
}

func Internal(context string) Code {
	return Code{Kind: InternalError, Context: context}
}

// Classify maps an error raised by the connection or wire layer to a
// Code. Errors that carry no recognizable cause are reported as
// HTTP-protocol errors since they can only originate from the exchange
// itself.
func Classify(err error) Code {
	ctx := err.Error()

	var dns *net.DNSError
	if errors.As(err, &dns) {
		return Code{Kind: DNSError, Context: ctx}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return Code{Kind: ConnectionRefused, Context: ctx}
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) {
		return Code{Kind: ConnectionTerminated, Context: ctx}
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Code{Kind: ConnectionTimeout, Context: ctx}
	}

	var rh tls.RecordHeaderError
	if errors.As(err, &rh) {
		return Code{Kind: TLSProtocolError, Context: ctx}
	}
	var (
		certInvalid x509.CertificateInvalidError
		unknownCA   x509.UnknownAuthorityError
		hostname    x509.HostnameError
	)
	if errors.As(err, &certInvalid) || errors.As(err, &unknownCA) || errors.As(err, &hostname) {
		return Code{Kind: TLSCertificateError, Context: ctx}
	}

	return Code{Kind: HTTPProtocolError, Context: ctx}
}

// coder is implemented by errors that carry a transport code.
type coder interface {
	TransportCode() (Code, bool)
}

// From is the extension-boundary mapper. A transport failure yields its
// original code unchanged; everything else collapses into an internal
// error holding the rendered message.
func From(err error) Code {
	var code Code
	if errors.As(err, &code) {
		return code
	}
	var c coder
	if errors.As(err, &c) {
		if code, ok := c.TransportCode(); ok {
			return code
		}
	}
	return Internal(err.Error())
}
