package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/net/http/httpguts"
)

// Request is an outgoing request under construction. It is a plain
// value: every With* step clones what it changes and returns a new
// Request, so intermediate builder states never alias each other and
// stay valid after later steps fail.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

func NewRequest(method, url string) Request {
	return Request{Method: method, URL: url, Header: make(http.Header)}
}

// WithHeaders replaces the header set wholesale.
func (r Request) WithHeaders(h http.Header) Request {
	r.Header = h.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	return r
}

// WithHeader appends a single header value. Names and values are
// validated the same way the net/http transport validates them; a
// rejected pair fails with ErrHeader and leaves the receiver untouched.
func (r Request) WithHeader(name, value string) (Request, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return r, headerError(fmt.Errorf("invalid header field name %q", name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return r, headerError(fmt.Errorf("invalid value for header field %q", name))
	}
	h := r.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Add(name, value)
	r.Header = h
	return r, nil
}

// WithBody sets the request body and derives the Content-Length header
// from its exact byte length.
func (r Request) WithBody(body []byte) (Request, error) {
	b := append([]byte(nil), body...)
	h := r.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set("Content-Length", strconv.Itoa(len(b)))
	r.Body, r.Header = b, h
	return r, nil
}

// WithJSON serializes v into a JSON body and tags the request with the
// matching Content-Type. Serialization failures surface as
// ErrSerialization.
func (r Request) WithJSON(v interface{}) (Request, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return r, serializationError(err)
	}
	r, err = r.WithHeader("Content-Type", "application/json; charset=UTF-8")
	if err != nil {
		return r, err
	}
	return r.WithBody(buf)
}
