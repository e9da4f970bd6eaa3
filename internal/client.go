package internal

import (
	"context"
	"io"
	"net/url"

	"github.com/nero-extensions/kitsu/internal/dialer"
	"github.com/nero-extensions/kitsu/internal/errcode"
	"github.com/nero-extensions/kitsu/internal/model"
	"github.com/nero-extensions/kitsu/internal/transport"
)

type PreparedRequest = model.PreparedRequest

type Handler = func(ctx context.Context, req *PreparedRequest) (*model.Response, error)
type Middleware func(next Handler) Handler

var defaultDialer = &dialer.CoreDialer{}

// Client executes synchronous HTTP exchanges over streams obtained
// from its dialer. The zero value is usable.
type Client struct {
	middlewares []Middleware
	dialer      dialer.Dialer
}

// Use appends mw to the end of the chain. The first "Use"d mw executes first
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseDialer replaces the connection source, receiving the previous one
// so implementations can wrap instead of replace.
func (c *Client) UseDialer(wrap func(dialer.Dialer) dialer.Dialer) {
	c.dialer = wrap(c.dialer)
}

func (c *Client) dial(ctx context.Context, req *PreparedRequest) (io.ReadWriteCloser, error) {
	if c.dialer != nil {
		return c.dialer.Dial(ctx, req)
	}
	return defaultDialer.Dial(ctx, req)
}

// Send consumes req and performs one exchange, then follows at most
// one redirect: if the response carries a Location header holding an
// absolute URL, the exchange is re-executed once against it with the
// original method, headers and body, and that second response is final
// no matter what it contains. An absent or unparseable Location returns
// the first response unchanged.
func (c *Client) Send(ctx context.Context, req model.Request) (*model.Response, error) {
	pr, err := req.Prepare()
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, pr)
	if err != nil {
		return nil, err
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return resp, nil
	}
	if u, err := url.Parse(location); err != nil || u.Scheme == "" || u.Host == "" {
		return resp, nil
	}
	redirected := req
	redirected.URL = location
	rpr, err := redirected.Prepare()
	if err != nil {
		return resp, nil
	}
	if resp.Body != nil {
		resp.Body.Close()
	}
	return c.do(ctx, rpr)
}

func (c *Client) do(ctx context.Context, req *PreparedRequest) (*model.Response, error) {
	next := Handler(c.exchange)
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}
	return next(ctx, req)
}

// exchange writes one request to a fresh stream and blocks until the
// response status and headers arrive. There is no timeout of its own: a
// stalled peer blocks until the context's dialer gives up or the caller
// abandons the stream.
func (c *Client) exchange(ctx context.Context, req *PreparedRequest) (*model.Response, error) {
	conn, err := c.dial(ctx, req)
	if err != nil {
		return nil, model.TransportError(errcode.Classify(err))
	}
	if err := transport.Write(conn, req); err != nil {
		conn.Close()
		return nil, model.TransportError(errcode.Classify(err))
	}
	resp := &model.Response{}
	if err := transport.Read(conn, resp); err != nil {
		conn.Close()
		return nil, model.TransportError(errcode.Classify(err))
	}
	return resp, nil
}
