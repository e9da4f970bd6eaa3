// Package dialer is the connection-establishment primitive under the
// client: it turns a prepared request into a raw byte stream the wire
// codec can write to and read from. Every exchange gets a fresh
// connection; there is no pooling or reuse.
package dialer

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"

	"github.com/nero-extensions/kitsu/internal/model"
)

// Dialers handle pretty much everything related to the actual
// connection.
type Dialer interface {
	// Dial returns an abstract stream for writing the request and reading
	// the response. The implementation of this stream could be specific
	// to the environment hosting the extension.
	Dial(ctx context.Context, r *model.PreparedRequest) (io.ReadWriteCloser, error)
	Unwrap() Dialer
}

var schemePorts = map[model.SchemeKind]string{
	model.SchemeHTTP:  "80",
	model.SchemeHTTPS: "443",
}

var zeroDialer net.Dialer

// CoreDialer opens one TCP connection per exchange, upgrading to TLS
// for https requests.
type CoreDialer struct {
	TLSConfig *tls.Config // the config to use, nil means defaults
}

func (d *CoreDialer) Clone() *CoreDialer {
	return &CoreDialer{TLSConfig: d.TLSConfig.Clone()}
}

func (d *CoreDialer) Unwrap() Dialer { return nil }

func (d *CoreDialer) Dial(ctx context.Context, r *model.PreparedRequest) (io.ReadWriteCloser, error) {
	addr, port := r.Authority, schemePorts[r.Scheme.Kind]
	if add, prt, err := net.SplitHostPort(addr); err == nil {
		addr, port = add, prt
	}
	if port == "" {
		return nil, errors.New("no port known for scheme " + r.Scheme.String())
	}
	conn, err := zeroDialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, port))
	if err != nil {
		return nil, err
	}
	if r.Scheme.Kind == model.SchemeHTTPS {
		config := d.TLSConfig.Clone()
		if config == nil {
			config = &tls.Config{}
		}
		config.ServerName = addr
		// http/1.1 only, never offer h2
		config.NextProtos = []string{"http/1.1"}
		c := tls.Client(conn, config)
		if err := c.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		conn = c
	}
	return conn, nil
}
