package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/nero-extensions/kitsu/internal/model"
	"github.com/nero-extensions/kitsu/internal/transport/chunked"
)

// writeChunk bounds a single write-and-flush of the outgoing body.
const writeChunk = 4096

type bodyCloser struct {
	io.Reader
	close func() error
}

func (b bodyCloser) Close() error { return b.close() }

type http1 struct {
}

func (t *http1) Write(w io.Writer, r *model.PreparedRequest) error {
	if err := t.writeHeader(w, r); err != nil {
		return err
	}
	return t.writeBody(w, r)
}

// writeHeader writes the request line and header part of an http 1.1
// request, e.g.:
//
//	GET /anime?filter[text]=x HTTP/1.1\r\n
//	Host: kitsu.io\r\n
//	Content-Type: application/json; charset=UTF-8\r\n
//	\r\n
func (t *http1) writeHeader(w io.Writer, r *model.PreparedRequest) error {
	header := bufio.NewWriter(w) // default bufsize is 4096

	if _, err := header.WriteString(r.Method); err != nil {
		return err
	}
	header.WriteByte(' ')
	header.WriteString(r.Target)
	header.WriteString(" HTTP/1.1\r\n")

	header.WriteString("Host: ")
	header.WriteString(r.Authority)
	header.WriteString("\r\n")
	if r.ContentLength != -1 && r.Header.Get("Content-Length") == "" {
		header.WriteString("Content-Length: ")
		header.WriteString(strconv.FormatInt(r.ContentLength, 10))
		header.WriteString("\r\n")
	}
	for k, v := range r.Header {
		if strings.EqualFold(k, "Host") {
			continue
		}
		for _, v := range v {
			header.WriteString(k)
			header.WriteString(": ")
			header.WriteString(v)
			if _, err := header.WriteString("\r\n"); err != nil {
				return err
			}
		}
	}
	if _, err := header.WriteString("\r\n"); err != nil {
		return err
	}
	return header.Flush()
}

// writeBody streams the request body in fixed-size chunks, each one
// written and flushed before the next is attempted. The body is always
// length-framed, so finishing needs no trailing metadata.
func (t *http1) writeBody(w io.Writer, r *model.PreparedRequest) error {
	body := r.Body
	if body == nil {
		return nil
	}
	bw := bufio.NewWriterSize(w, writeChunk)
	for len(body) > 0 {
		chunk := body
		if len(chunk) > writeChunk {
			chunk = chunk[:writeChunk]
		}
		if _, err := bw.Write(chunk); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		body = body[len(chunk):]
	}
	return nil
}

func (t *http1) Read(r io.Reader, resp *model.Response) (err error) {
	closer := io.NopCloser
	if cr, ok := r.(io.Closer); ok {
		closer = func(r io.Reader) io.ReadCloser { return bodyCloser{r, cr.Close} }
	}
	tp := textproto.NewReader(bufio.NewReader(r))

	line, err := tp.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	proto, status, ok := strings.Cut(line, " ")
	if !ok {
		return errors.New("malformed HTTP response")
	}
	resp.Proto = proto
	resp.Status = strings.TrimLeft(status, " ")

	statusCode, _, _ := strings.Cut(resp.Status, " ")
	if len(statusCode) != 3 {
		return errors.New("malformed HTTP status code " + statusCode)
	}
	resp.StatusCode, err = strconv.Atoi(statusCode)
	if err != nil || resp.StatusCode < 0 {
		return errors.New("malformed HTTP status code")
	}

	mimeHeader, err := tp.ReadMIMEHeader()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	resp.Header = http.Header(mimeHeader)

	return t.readTransfer(tp.R, resp, closer)
}

func (t *http1) readTransfer(r io.Reader, resp *model.Response, closer func(io.Reader) io.ReadCloser) error {
	contentLens := resp.Header["Content-Length"]

	// Hardening against HTTP request smuggling, taken from standard library
	if len(contentLens) > 1 {
		// Per RFC 7230 Section 3.3.2
		first := textproto.TrimString(contentLens[0])
		for _, ct := range contentLens[1:] {
			if first != textproto.TrimString(ct) {
				return fmt.Errorf("http: message cannot contain multiple Content-Length headers; got %q", contentLens)
			}
		}

		// deduplicate Content-Length
		resp.Header.Del("Content-Length")
		resp.Header.Add("Content-Length", first)

		contentLens = resp.Header["Content-Length"]
	}

	cl := int64(-1)
	if len(contentLens) > 0 {
		n, err := strconv.ParseUint(contentLens[0], 10, 63)
		if err == nil {
			cl = int64(n)
		}
	}

	if resp.Header.Get("Transfer-Encoding") == "chunked" {
		resp.Body = closer(chunked.NewReader(r))
		return nil
	}

	resp.ContentLength = cl
	switch {
	case cl > 0:
		resp.Body = closer(io.LimitReader(r, cl))
	case cl == 0:
		closer(nil).Close()
		resp.Body = http.NoBody
	default:
		// no declared length: read until the stream closes
		resp.Body = closer(r)
	}
	return nil
}
