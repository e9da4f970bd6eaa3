// Package chunked decodes the HTTP/1.1 chunked transfer coding on the
// response path. Outgoing bodies are always length-framed, so only the
// reading half exists.
package chunked

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// NewReader wraps r and exposes the dechunked byte stream. The reader
// yields io.EOF at the terminating zero-length chunk.
func NewReader(r io.Reader) io.Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &reader{br: br}
}

type reader struct {
	br        *bufio.Reader
	remaining uint64 // unread bytes of the current chunk
	inChunk   bool
	done      bool
}

func (c *reader) readChunkHeader() (uint64, error) {
	line, isPrefix, err := c.br.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	if isPrefix {
		return 0, errors.New("http chunk header too long")
	}
	size := string(line)
	// chunk extensions are tolerated and dropped
	if i := strings.IndexByte(size, ';'); i >= 0 {
		size = size[:i]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(size), 16, 63)
	if err != nil {
		return 0, errors.New("invalid chunk length " + strconv.Quote(size))
	}
	return n, nil
}

func (c *reader) readChunkTerminator() error {
	crlf := make([]byte, 2)
	if _, err := io.ReadFull(c.br, crlf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if crlf[0] != '\r' || crlf[1] != '\n' {
		return errors.New("malformed chunked encoding")
	}
	return nil
}

func (c *reader) Read(p []byte) (int, error) {
	if c.done {
		return 0, io.EOF
	}
	if !c.inChunk {
		n, err := c.readChunkHeader()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			c.done = true
			return 0, io.EOF
		}
		c.remaining, c.inChunk = n, true
	}

	if uint64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.br.Read(p)
	c.remaining -= uint64(n)
	if c.remaining == 0 && err == nil {
		c.inChunk = false
		err = c.readChunkTerminator()
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
