package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// requestPlan is the mutable state of one fetch call across redirect hops.
type requestPlan struct {
	url      *url.URL
	method   string
	header   http.Header
	body     *bodyState
	redirect RedirectMode
	hops     int
}

// Fetch executes a request described by input (a URL string, *url.URL, or
// *Request) and options, following redirects per the request's policy, and
// returns a Response whose body is a lazy stream. Cancellation and its
// reason flow through ctx; a context already done fails before any I/O.
func (c *Client) Fetch(ctx context.Context, input any, opts ...RequestOption) (*Response, error) {
	req, u, err := resolveRequest(input, opts...)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, abortReason(ctx)
	}

	body, err := extractBody(req.Body)
	if err != nil {
		return nil, err
	}

	plan := &requestPlan{
		url:      u,
		method:   req.Method,
		header:   cloneHeader(req.Header),
		body:     body,
		redirect: req.Redirect,
	}

	for {
		finalizeHeaders(plan)

		c.logger.Debug("fetch: sending request",
			zap.String("method", plan.method),
			zap.String("url", plan.url.String()),
			zap.Int("hop", plan.hops))

		eresp, err := c.engine.RoundTrip(ctx, engineRequest(plan))
		if err != nil {
			if ctx.Err() != nil {
				return nil, abortReason(ctx)
			}
			return nil, newFetchError("fetch", plan.url.String(), 0, err)
		}

		header := headerFromPairs(eresp.RawHeader)

		if isRedirectStatus(eresp.StatusCode) {
			location := header.Get(headerLocation)
			if location != "" {
				resp, done, err := c.redirectStep(ctx, plan, eresp, header, location)
				if err != nil {
					return nil, err
				}
				if done {
					return resp, nil
				}
				continue
			}
			// A 3xx without Location is an ordinary response.
		}

		return c.deliver(ctx, plan, eresp, header), nil
	}
}

// redirectStep applies the redirect policy for one 3xx hop. It returns
// either a final response (manual mode), an error (error mode and all
// follow-mode rejections), or neither, in which case the plan has been
// advanced and the caller loops back to send.
func (c *Client) redirectStep(ctx context.Context, plan *requestPlan, eresp *EngineResponse, header http.Header, location string) (*Response, bool, error) {
	locURL, err := plan.url.Parse(location)
	if err != nil {
		discardBody(eresp)
		return nil, false, newFetchError("redirect", plan.url.String(), eresp.StatusCode, err)
	}

	switch plan.redirect {
	case RedirectError:
		discardBody(eresp)
		return nil, false, newFetchError("redirect", plan.url.String(), eresp.StatusCode, ErrRedirectModeError)

	case RedirectManual:
		header.Set(headerLocation, locURL.String())
		return c.deliver(ctx, plan, eresp, header), true, nil
	}

	// RedirectFollow.
	plan.hops++
	if plan.hops > maxRedirects {
		discardBody(eresp)
		return nil, false, newFetchError("redirect", plan.url.String(), eresp.StatusCode, &tooManyRedirectsError{url: plan.url.String()})
	}
	if locURL.Scheme != "http" && locURL.Scheme != "https" {
		discardBody(eresp)
		return nil, false, newFetchError("redirect", plan.url.String(), eresp.StatusCode, ErrNonHTTPRedirect)
	}

	status := eresp.StatusCode
	switch {
	case status == 303 || ((status == 301 || status == 302) && plan.method == "POST"):
		// The hop demotes the request to a bodyless GET.
		plan.method = "GET"
		plan.body = &bodyState{length: 0}
		plan.header.Del(headerContentLength)

	case !plan.body.empty():
		if plan.body.remake == nil {
			discardBody(eresp)
			return nil, false, newFetchError("redirect", plan.url.String(), eresp.StatusCode, ErrStreamedBodyRedirect)
		}
		plan.body.reader = plan.body.remake()
	}

	discardBody(eresp)

	c.logger.Debug("fetch: following redirect",
		zap.String("from", plan.url.String()),
		zap.String("to", locURL.String()),
		zap.Int("status", status),
		zap.Int("hop", plan.hops))

	plan.url = locURL
	return nil, false, nil
}

// deliver decodes and wraps the response body and assembles the final
// Response. HEAD responses and statuses 204/304 carry no body; for all
// others the Content-Encoding value is normalized to lowercase, written
// back, and used to select the decoder. Unknown encodings pass through.
func (c *Client) deliver(ctx context.Context, plan *requestPlan, eresp *EngineResponse, header http.Header) *Response {
	var body io.ReadCloser
	if plan.method == "HEAD" || eresp.StatusCode == 204 || eresp.StatusCode == 304 {
		discardBody(eresp)
	} else {
		stream := eresp.Body
		if enc := header.Get(headerContentEncoding); enc != "" {
			lower := normalizeEncoding(enc)
			header.Set(headerContentEncoding, lower)
			stream = decodeBody(lower, stream)
		}
		body = &cancelableBody{ctx: ctx, body: stream}
	}

	c.logger.Debug("fetch: response delivered",
		zap.String("url", plan.url.String()),
		zap.Int("status", eresp.StatusCode),
		zap.Bool("redirected", plan.hops > 0))

	return &Response{
		Status:     eresp.StatusCode,
		StatusText: eresp.StatusText,
		Header:     header,
		Body:       body,
		URL:        plan.url.String(),
		Redirected: plan.hops > 0,
		Type:       ResponseDefault,
	}
}

// finalizeHeaders applies the header defaults for the next send: Accept,
// the body's synthesized Content-Type (a caller-supplied one wins), and the
// Content-Length framing decision.
func finalizeHeaders(plan *requestPlan) {
	h := plan.header
	if h.Get(headerAccept) == "" {
		h.Set(headerAccept, "*/*")
	}
	if plan.body.contentType != "" && h.Get(headerContentType) == "" {
		h.Set(headerContentType, plan.body.contentType)
	}
	switch {
	case plan.body.empty() && (plan.method == "POST" || plan.method == "PUT"):
		h.Set(headerContentLength, "0")
	case !plan.body.empty() && plan.body.length >= 0:
		h.Set(headerContentLength, strconv.FormatInt(plan.body.length, 10))
	case !plan.body.empty():
		// Unknown length: the engine frames the body as chunked.
		h.Del(headerContentLength)
	}
}

// engineRequest projects the plan onto the engine's request shape.
func engineRequest(plan *requestPlan) *EngineRequest {
	er := &EngineRequest{
		Method:        plan.method,
		URL:           plan.url,
		RawHeader:     headerToPairs(plan.header),
		ContentLength: 0,
	}
	if !plan.body.empty() {
		er.Body = plan.body.reader
		er.ContentLength = plan.body.length
	}
	return er
}

// isRedirectStatus reports whether status is a redirect the orchestrator
// acts on.
func isRedirectStatus(status int) bool {
	switch status {
	case 301, 302, 303, 307, 308:
		return true
	}
	return false
}

// discardBody drains and closes an engine response body so the connection
// can be reused.
func discardBody(eresp *EngineResponse) {
	if eresp.Body == nil {
		return
	}
	io.Copy(io.Discard, eresp.Body)
	eresp.Body.Close()
}

// abortReason maps a done context to its abort reason: the cancel cause
// when one was supplied, the context error otherwise.
func abortReason(ctx context.Context) error {
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return ctx.Err()
}
