package transport

import (
	"io"

	"github.com/nero-extensions/kitsu/internal/model"
)

// Transport is a wire codec for one half of an exchange.
type Transport interface {
	Write(w io.Writer, req *model.PreparedRequest) error
	Read(r io.Reader, resp *model.Response) error
}

var codec = &http1{}

// Write serializes req onto the outgoing stream w.
func Write(w io.Writer, req *model.PreparedRequest) error {
	return codec.Write(w, req)
}

// Read blocks until the response status and headers are available on r
// and wires up the body stream.
func Read(r io.Reader, resp *model.Response) error {
	return codec.Read(r, resp)
}
