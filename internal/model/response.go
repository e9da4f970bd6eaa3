package model

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
)

// readChunk bounds a single blocking read while draining a body.
const readChunk = 4096

// Response is a completed exchange. Its body is a single-use resource:
// the first call to Bytes, Text, JSON or InputStream consumes it, any
// later materialization fails with http.ErrBodyReadAfterClose.
type Response struct {
	Proto      string
	Status     string
	StatusCode int
	Header     http.Header

	ContentLength int64
	Body          io.ReadCloser

	consumed uint32
}

func (r *Response) take() (io.ReadCloser, error) {
	if !atomic.CompareAndSwapUint32(&r.consumed, 0, 1) {
		return nil, http.ErrBodyReadAfterClose
	}
	body := r.Body
	r.Body = nil
	if body == nil {
		body = http.NoBody
	}
	return body, nil
}

// Bytes consumes the response and drains its full body. A parseable
// Content-Length header acts as the read ceiling: each blocking read is
// bounded by what remains of it. Without the header, reading continues
// until the stream signals closure. The loop keeps whatever bytes a
// failing read returned before stopping.
func (r *Response) Bytes() ([]byte, error) {
	body, err := r.take()
	if err != nil {
		return nil, err
	}
	defer body.Close()

	remaining := int64(-1)
	var full []byte
	if v := r.Header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 63); err == nil {
			remaining = int64(n)
			if remaining <= 1<<20 {
				full = make([]byte, 0, remaining)
			}
		}
	}

	buf := make([]byte, readChunk)
	for {
		limit := int64(len(buf))
		if remaining >= 0 && remaining < limit {
			limit = remaining
		}
		if limit == 0 {
			break
		}
		n, err := body.Read(buf[:limit])
		full = append(full, buf[:n]...)
		if remaining >= 0 {
			remaining -= int64(n)
		}
		if err != nil {
			break
		}
	}
	return full, nil
}

// Text consumes the response and decodes the body as UTF-8, replacing
// invalid sequences instead of rejecting them.
func (r *Response) Text() (string, error) {
	full, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(full), "�"), nil
}

// JSON consumes the response and decodes the body into v. Malformed
// JSON or a shape mismatch fails with ErrSerialization.
func (r *Response) JSON(v interface{}) error {
	full, err := r.Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(full, v); err != nil {
		return serializationError(err)
	}
	return nil
}

// InputStream consumes the response and hands out the raw body handle
// for callers that want to stream instead of buffering.
func (r *Response) InputStream() (io.ReadCloser, error) {
	return r.take()
}
