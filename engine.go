package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// EngineRequest is one outbound exchange handed to an Engine. Headers travel
// as a flat [k0, v0, k1, v1, ...] pair list; ContentLength is -1 when the
// body length is unknown, in which case the engine uses chunked framing.
type EngineRequest struct {
	Method        string
	URL           *url.URL
	RawHeader     []string
	Body          io.Reader
	ContentLength int64
}

// EngineResponse is the engine's view of a response: status, raw header
// pairs, and the undecoded body stream.
type EngineResponse struct {
	StatusCode int
	StatusText string
	RawHeader  []string
	Body       io.ReadCloser
}

// Engine performs a single HTTP exchange. It must not follow redirects and
// must not decode the response body; both are this package's job. The
// default engine wraps net/http's transport.
type Engine interface {
	RoundTrip(ctx context.Context, req *EngineRequest) (*EngineResponse, error)
}

// netEngine adapts an http.RoundTripper to the Engine interface.
type netEngine struct {
	rt http.RoundTripper
}

// defaultTransport builds the transport used when no engine is supplied.
// Compression is disabled at the transport so Content-Encoding reaches the
// decoding layer intact; response header timeouts are disabled because the
// body is consumed lazily by the caller.
func defaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 0,
		ExpectContinueTimeout: 1 * time.Second,

		DisableCompression: true,
	}
}

// RoundTrip implements Engine.
func (e *netEngine) RoundTrip(ctx context.Context, req *EngineRequest) (*EngineResponse, error) {
	hreq := &http.Request{
		Method:     req.Method,
		URL:        req.URL,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     headerFromPairs(req.RawHeader),
		Host:       req.URL.Host,
	}
	if req.Body != nil {
		// A closer-aware body lets the transport propagate aborts to the
		// source: a cancelled exchange closes the body, and a piped writer
		// observes the failure.
		if rc, ok := req.Body.(io.ReadCloser); ok {
			hreq.Body = rc
		} else {
			hreq.Body = io.NopCloser(req.Body)
		}
		hreq.ContentLength = req.ContentLength
	}
	hreq = hreq.WithContext(ctx)

	resp, err := e.rt.RoundTrip(hreq)
	if err != nil {
		return nil, err
	}
	return &EngineResponse{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp.Status),
		RawHeader:  headerToPairs(resp.Header),
		Body:       resp.Body,
	}, nil
}

// statusText strips the numeric code from an "200 OK"-style status line.
func statusText(status string) string {
	if i := strings.IndexByte(status, ' '); i >= 0 {
		return status[i+1:]
	}
	return status
}
