package fetch

import (
	"net/http"

	"go.uber.org/zap"
)

// =============================================================================
// Client Options
// =============================================================================

type clientConfig struct {
	engine    Engine
	transport http.RoundTripper
	logger    *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// WithEngine sets a custom HTTP engine.
// If not set, an engine over a tuned net/http transport is used.
func WithEngine(e Engine) ClientOption {
	return func(cfg *clientConfig) {
		cfg.engine = e
	}
}

// WithHTTPTransport sets the http.RoundTripper backing the default engine.
// Ignored when WithEngine is also given. The round tripper must not follow
// redirects or decompress bodies on its own.
func WithHTTPTransport(rt http.RoundTripper) ClientOption {
	return func(cfg *clientConfig) {
		cfg.transport = rt
	}
}

// WithLogger sets the client's logger. Orchestration events (request issue,
// redirect hops, completion) are logged at debug level. Defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = l
	}
}

// =============================================================================
// Request Options
// =============================================================================

// RequestOption configures one fetch call. Options override the fields of a
// *Request input field-by-field.
type RequestOption func(*Request)

// WithMethod sets the HTTP method. It is uppercased during validation;
// CONNECT, TRACE, and TRACK are rejected.
func WithMethod(method string) RequestOption {
	return func(r *Request) {
		r.Method = method
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(key, value)
	}
}

// WithHeaders merges a header source into the request: an http.Header, a
// map[string]string, or a [][2]string pair list. Keys given here win over
// keys already present on a *Request input.
func WithHeaders(src any) RequestOption {
	return func(r *Request) {
		r.Header = mergeHeaderInputs(r.Header, src)
	}
}

// WithBody sets the request body to any accepted body input: a string,
// []byte, *Blob, *FormData, *URLSearchParams, an io.Reader, a byte-chunk
// sequence, or a pre-assembled MultipartStream.
func WithBody(body any) RequestOption {
	return func(r *Request) {
		r.Body = body
	}
}

// WithRedirect sets the redirect policy. Default is RedirectFollow.
func WithRedirect(mode RedirectMode) RequestOption {
	return func(r *Request) {
		r.Redirect = mode
	}
}

// WithDuplex sets the duplex hint, carried through untouched.
func WithDuplex(duplex string) RequestOption {
	return func(r *Request) {
		r.Duplex = duplex
	}
}
