package kitsu

import (
	"net/http"

	"github.com/nero-extensions/kitsu/internal"
	"github.com/nero-extensions/kitsu/internal/model"
)

type Header = http.Header
type Client = internal.Client
type Handler = internal.Handler
type Middleware = internal.Middleware

type Request = model.Request
type PreparedRequest = model.PreparedRequest
type Response = model.Response
type Error = model.Error

// The three failure kinds carried by [Error], for errors.Is matching.
var (
	ErrSerialization = model.ErrSerialization
	ErrHeader        = model.ErrHeader
	ErrTransport     = model.ErrTransport
)

// NewRequest starts building an outgoing request with empty headers and
// no body.
func NewRequest(method, url string) Request {
	return model.NewRequest(method, url)
}
