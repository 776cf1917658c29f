package fetch

import (
	"context"
	"io"
	"net/http"

	"github.com/valyala/bytebufferpool"
)

// ResponseType is the response type classification of the fetch contract.
type ResponseType string

const (
	ResponseBasic          ResponseType = "basic"
	ResponseCORS           ResponseType = "cors"
	ResponseDefault        ResponseType = "default"
	ResponseError          ResponseType = "error"
	ResponseOpaque         ResponseType = "opaque"
	ResponseOpaqueRedirect ResponseType = "opaqueredirect"
)

// Response is the result of a fetch. The body is a lazy stream: nothing is
// read from the wire (or decoded) until the caller consumes it, so a
// malformed compressed payload surfaces on read, not at fetch time.
//
// Body is nil for HEAD responses and statuses 204/304; the read helpers
// treat a nil body as empty.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// StatusText is the reason phrase reported by the server.
	StatusText string

	// Header is the response header set. Content-Encoding, when present on
	// a decodable response, has been normalized to lowercase.
	Header http.Header

	// Body is the decoded response body stream, or nil when the response
	// carries none.
	Body io.ReadCloser

	// URL is the final URL after any redirects.
	URL string

	// Redirected is true when at least one redirect hop was followed.
	Redirected bool

	// Type is the response type; always ResponseDefault for engine-backed
	// fetches.
	Type ResponseType
}

// Ok reports whether the status is in the 2xx range.
func (r *Response) Ok() bool {
	return r.Status >= 200 && r.Status < 300
}

// Bytes reads the entire body and closes it.
// A nil body yields an empty slice.
func (r *Response) Bytes() ([]byte, error) {
	if r.Body == nil {
		return []byte{}, nil
	}
	defer r.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, r.Body); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// Text reads the entire body as a string and closes it.
func (r *Response) Text() (string, error) {
	data, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close releases the body without reading it.
// Safe on a nil body and after the body has been consumed.
func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// cancelableBody surfaces the context's abort reason from body reads once
// the context is done. The read itself is interrupted by the engine (the
// exchange is context-bound); this wrapper maps the resulting error to the
// abort reason the caller supplied.
type cancelableBody struct {
	ctx  context.Context
	body io.ReadCloser
}

// Read implements io.Reader.
func (b *cancelableBody) Read(p []byte) (int, error) {
	if b.ctx.Err() != nil {
		return 0, abortReason(b.ctx)
	}
	n, err := b.body.Read(p)
	if err != nil && err != io.EOF && b.ctx.Err() != nil {
		err = abortReason(b.ctx)
	}
	return n, err
}

// Close implements io.Closer.
func (b *cancelableBody) Close() error {
	return b.body.Close()
}
