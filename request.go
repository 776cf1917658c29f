package fetch

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one fetch call. When passed as the input of Fetch, its
// fields serve as defaults which per-call options override field-by-field.
type Request struct {
	// URL is the absolute request URL. Only http and https are supported.
	URL string

	// Method is the HTTP method; empty means GET.
	Method string

	// Header is the request header set.
	Header http.Header

	// Body is any of the accepted body inputs; nil means no body.
	Body any

	// Redirect is the redirect policy; empty means RedirectFollow.
	Redirect RedirectMode

	// Duplex, when set, is stored on the Request and kept by Clone. It is
	// not passed to the Engine; request streaming works without it.
	Duplex string
}

// NewRequest builds a validated Request from an input (URL string, *url.URL,
// or another *Request) and options. Fetching a Request built here is
// equivalent to passing the same input and options to Fetch directly.
func NewRequest(input any, opts ...RequestOption) (*Request, error) {
	req, _, err := resolveRequest(input, opts...)
	return req, err
}

// Clone deep-copies the request. The body input is shared, not copied.
func (r *Request) Clone() *Request {
	out := *r
	out.Header = cloneHeader(r.Header)
	return &out
}

// forbiddenMethods are rejected outright; the engine cannot express them
// as ordinary exchanges.
var forbiddenMethods = map[string]bool{
	"CONNECT": true,
	"TRACE":   true,
	"TRACK":   true,
}

// resolveRequest merges input and options into a canonical Request and
// validates URL, method, and redirect mode. All failures are TypeErrors
// reported before any I/O.
func resolveRequest(input any, opts ...RequestOption) (*Request, *url.URL, error) {
	req := &Request{Header: make(http.Header)}

	switch v := input.(type) {
	case string:
		req.URL = v
	case *url.URL:
		req.URL = v.String()
	case *Request:
		req = v.Clone()
		if req.Header == nil {
			req.Header = make(http.Header)
		}
	case nil:
		return nil, nil, newTypeError("Invalid URL: <nil>")
	default:
		req.URL = fmt.Sprint(v)
	}

	for _, opt := range opts {
		opt(req)
	}

	u, err := url.Parse(req.URL)
	if err != nil || u.Scheme == "" {
		return nil, nil, newTypeError("Invalid URL: %q", req.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, nil, newTypeError("URL scheme %q is not supported.", u.Scheme+":")
	}
	if u.Host == "" {
		return nil, nil, newTypeError("Invalid URL: %q", req.URL)
	}

	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if forbiddenMethods[req.Method] {
		return nil, nil, newTypeError("Failed to construct 'Request': '%s' HTTP method is unsupported.", req.Method)
	}

	if req.Redirect == "" {
		req.Redirect = RedirectFollow
	}
	if !req.Redirect.valid() {
		return nil, nil, newTypeError("Request constructor: %s is not an accepted type. Expected one of follow, manual, error.", req.Redirect)
	}

	return req, u, nil
}
