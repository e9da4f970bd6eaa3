package model

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/nero-extensions/kitsu/internal/errcode"
)

type SchemeKind int

const (
	SchemeHTTP SchemeKind = iota
	SchemeHTTPS
	SchemeOther
)

// Scheme is the scheme tag of an outgoing request. Anything other than
// http and https is carried verbatim in Raw.
type Scheme struct {
	Kind SchemeKind
	Raw  string
}

func (s Scheme) String() string {
	switch s.Kind {
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	default:
		return s.Raw
	}
}

// PreparedRequest is the transport-level descriptor derived from a
// Request: parsed URL, scheme tag, authority and request target, ready
// to be written to an outgoing stream.
type PreparedRequest struct {
	Request

	U         *url.URL
	Scheme    Scheme
	Authority string
	Target    string // path, or path?query

	ContentLength int64 // -1 when the request has no body
}

// Prepare parses and normalizes the request URL and freezes the wire
// form of the request. Failures are reported as transport errors since
// nothing transmittable could be constructed.
func (r Request) Prepare() (*PreparedRequest, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, TransportError(errcode.Internal(err.Error()))
	}
	if u.Host == "" {
		return nil, TransportError(errcode.Internal("empty host in URL " + r.URL))
	}

	scheme := Scheme{Kind: SchemeOther, Raw: u.Scheme}
	switch u.Scheme {
	case "http":
		scheme = Scheme{Kind: SchemeHTTP}
	case "https":
		scheme = Scheme{Kind: SchemeHTTPS}
	}

	// An absent query and an empty query string collapse to the same
	// target here.
	target := u.EscapedPath()
	if target == "" {
		target = "/"
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}

	cl := int64(-1)
	if r.Body != nil {
		cl = int64(len(r.Body))
		if v := r.Header.Get("Content-Length"); v != "" {
			if declared, err := strconv.ParseInt(v, 10, 64); err == nil && declared != cl {
				return nil, headerError(errors.New("conflicting value between body size and content-length request header"))
			}
		}
	}

	return &PreparedRequest{
		Request: r, U: u,
		Scheme:        scheme,
		Authority:     u.Host,
		Target:        target,
		ContentLength: cl,
	}, nil
}
