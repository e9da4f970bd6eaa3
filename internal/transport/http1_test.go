package transport_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/nero-extensions/kitsu/internal/model"
	"github.com/nero-extensions/kitsu/internal/transport"
)

type tCase struct {
	data []byte
	req  model.Request
}

var reqShouldBe = map[string]tCase{
	"BasicRequest": {
		req: model.Request{
			Method: "GET",
			URL:    "http://www.example.com",
		},
		data: []byte("GET / HTTP/1.1\r\nHost: www.example.com\r\n\r\n"),
	},
	"QueryNonStandard": {
		req: model.Request{
			Method: "GET",
			URL:    "http://www.example.com/test?1=33=1",
		},
		data: []byte("GET /test?1=33=1 HTTP/1.1\r\nHost: www.example.com\r\n\r\n"),
	},
	"HeaderNotCanonicalized": {
		req: model.Request{
			Method: "GET",
			URL:    "http://www.example.com/",
			Header: http.Header{"x-123-vv": {"1"}},
		},
		data: []byte("GET / HTTP/1.1\r\nHost: www.example.com\r\nx-123-vv: 1\r\n\r\n"),
	},
	"URIFragmentNotIncluded": {
		req: model.Request{
			Method: "GET",
			URL:    "http://www.example.com/?test=1#frag",
		},
		data: []byte("GET /?test=1 HTTP/1.1\r\nHost: www.example.com\r\n\r\n"),
	},
	"BodyAfterHeaders": {
		req: model.Request{
			Method: "POST",
			URL:    "http://www.example.com/submit",
			Header: http.Header{"Content-Length": {"5"}},
			Body:   []byte("hello"),
		},
		data: []byte("POST /submit HTTP/1.1\r\nHost: www.example.com\r\nContent-Length: 5\r\n\r\nhello"),
	},
}

func TestRequestSerialize(t *testing.T) {
	for name, cas := range reqShouldBe {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			pr, err := tCase.req.Prepare()
			if err != nil {
				t.Fatal(err)
			}
			var wire bytes.Buffer
			if err := transport.Write(&wire, pr); err != nil {
				t.Fatal(err)
			}
			if err := iotest.TestReader(&wire, tCase.data); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestLargeBodyWrittenWhole(t *testing.T) {
	body := bytes.Repeat([]byte("0123456789abcdef"), 1024) // 4 write chunks
	req, err := model.NewRequest("PUT", "http://www.example.com/upload").WithBody(body)
	if err != nil {
		t.Fatal(err)
	}
	pr, err := req.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	var wire bytes.Buffer
	if err := transport.Write(&wire, pr); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(wire.Bytes(), body) {
		t.Error("wire data does not end with the full body")
	}
}

func TestResponseRead(t *testing.T) {
	cases := map[string]struct {
		wire   string
		status int
		body   string
	}{
		"ContentLength": {
			wire:   "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhelloTRAILING GARBAGE",
			status: 200,
			body:   "hello",
		},
		"EmptyBody": {
			wire:   "HTTP/1.1 204 No Content\r\nContent-Length: 0\r\n\r\n",
			status: 204,
			body:   "",
		},
		"NoLengthReadToClose": {
			wire:   "HTTP/1.1 200 OK\r\nConnection: close\r\n\r\nuntil the end",
			status: 200,
			body:   "until the end",
		},
		"Chunked": {
			wire:   "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n",
			status: 200,
			body:   "hello world",
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			resp := &model.Response{}
			if err := transport.Read(strings.NewReader(c.wire), resp); err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != c.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, c.status)
			}
			full, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if string(full) != c.body {
				t.Errorf("body = %q, want %q", full, c.body)
			}
		})
	}
}

func TestResponseReadMalformed(t *testing.T) {
	for name, wire := range map[string]string{
		"Empty":      "",
		"NoStatus":   "HTTP/1.1\r\n\r\n",
		"BadCode":    "HTTP/1.1 2x0 OK\r\n\r\n",
		"Truncated":  "HTTP/1.1 200 OK\r\nContent-Le",
		"ConflictCL": "HTTP/1.1 200 OK\r\nContent-Length: 5\r\nContent-Length: 6\r\n\r\nhello!",
	} {
		wire := wire
		t.Run(name, func(t *testing.T) {
			if err := transport.Read(strings.NewReader(wire), &model.Response{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
