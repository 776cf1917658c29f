package fetchtest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// MockServer is a local loopback origin implementing routes that fetch tests
// need: body echo, request inspection, redirect chains, and compressed
// payloads in every supported content coding.
//
// Routes:
//
//	ANY  /echo                 echoes the body, mirroring Content-Type
//	ANY  /inspect              reports the observed method and body
//	ANY  /redirect?to=U&code=N redirects to U with status N (default 302)
//	ANY  /chain/N              N hops of 302 ending in 200 "done"
//	GET  /encoded/E?payload=P  payload P compressed with coding E
//	ANY  /status/N             bare status N response
type MockServer struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest is one request observed by the server.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// NewMockServer creates a new mock origin.
func NewMockServer() *MockServer {
	ms := &MockServer{}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handleRequest))
	return ms
}

// URL returns the base URL of the mock server.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Transport returns an http.RoundTripper wired to the mock server,
// suitable for fetch.WithHTTPTransport: it has transparent compression
// disabled, so Content-Encoding reaches the client's decoding layer.
func (ms *MockServer) Transport() http.RoundTripper {
	t := ms.server.Client().Transport.(*http.Transport).Clone()
	t.DisableCompression = true
	return t
}

// Close shuts down the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// Requests returns all recorded requests in arrival order.
func (ms *MockServer) Requests() []RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]RecordedRequest(nil), ms.requests...)
}

// LastRequest returns the most recent request, if any.
func (ms *MockServer) LastRequest() (RecordedRequest, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return RecordedRequest{}, false
	}
	return ms.requests[len(ms.requests)-1], true
}

// Reset clears the recorded requests.
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = nil
}

// handleRequest records the request and routes it.
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.requests = append(ms.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	ms.mu.Unlock()

	switch {
	case r.URL.Path == "/echo":
		ms.handleEcho(w, r, body)
	case r.URL.Path == "/inspect":
		ms.handleInspect(w, r, body)
	case r.URL.Path == "/redirect":
		ms.handleRedirect(w, r)
	case strings.HasPrefix(r.URL.Path, "/chain/"):
		ms.handleChain(w, r)
	case strings.HasPrefix(r.URL.Path, "/encoded/"):
		ms.handleEncoded(w, r)
	case strings.HasPrefix(r.URL.Path, "/status/"):
		ms.handleStatus(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleEcho returns the request body verbatim, mirroring its content type.
func (ms *MockServer) handleEcho(w http.ResponseWriter, r *http.Request, body []byte) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleInspect reports the observed method and body. Headers are available
// through Requests(); the response keeps a flat, easily-asserted shape.
func (ms *MockServer) handleInspect(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "method=%s\nbody=%s", r.Method, body)
}

// handleRedirect issues a redirect to the `to` query target with the
// `code` status. Without `to`, the Location header is omitted entirely.
func (ms *MockServer) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := http.StatusFound
	if c := r.URL.Query().Get("code"); c != "" {
		if n, err := strconv.Atoi(c); err == nil {
			code = n
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		w.Header().Set("Location", to)
	}
	w.WriteHeader(code)
}

// handleChain serves /chain/N: N > 0 redirects to /chain/N-1, 0 responds
// 200 "done".
func (ms *MockServer) handleChain(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/chain/"))
	if err != nil {
		http.Error(w, "bad chain index", http.StatusBadRequest)
		return
	}
	if n > 0 {
		w.Header().Set("Location", fmt.Sprintf("/chain/%d", n-1))
		w.WriteHeader(http.StatusFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "done")
}

// handleEncoded serves /encoded/E: the `payload` query value (default
// "hello world") compressed with coding E. The Content-Encoding header is
// reported exactly as the `header` query value when given, so tests can
// exercise case normalization.
func (ms *MockServer) handleEncoded(w http.ResponseWriter, r *http.Request) {
	coding := strings.TrimPrefix(r.URL.Path, "/encoded/")
	payload := r.URL.Query().Get("payload")
	if payload == "" {
		payload = "hello world"
	}
	headerValue := r.URL.Query().Get("header")
	if headerValue == "" {
		headerValue = coding
	}

	data, err := Compress(coding, []byte(payload))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Encoding", headerValue)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleStatus serves /status/N with an empty body.
func (ms *MockServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/status/"))
	if err != nil {
		http.Error(w, "bad status", http.StatusBadRequest)
		return
	}
	w.WriteHeader(n)
}

// Compress encodes data with the named content coding: gzip, br, deflate
// (zlib-wrapped), or deflate-raw.
func Compress(coding string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch coding {
	case "gzip":
		zw := gzip.NewWriter(&buf)
		zw.Write(data)
		if err := zw.Close(); err != nil {
			return nil, err
		}
	case "br":
		bw := brotli.NewWriter(&buf)
		bw.Write(data)
		if err := bw.Close(); err != nil {
			return nil, err
		}
	case "deflate":
		zw := zlib.NewWriter(&buf)
		zw.Write(data)
		if err := zw.Close(); err != nil {
			return nil, err
		}
	case "deflate-raw":
		fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		fw.Write(data)
		if err := fw.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("fetchtest: unknown coding %q", coding)
	}
	return buf.Bytes(), nil
}

// MockTransport is an http.RoundTripper that records requests and returns
// configured responses. Useful for driving the client without a server.
type MockTransport struct {
	mu        sync.Mutex
	requests  []*http.Request
	responses []*http.Response
	errors    []error
	index     int
}

// NewMockTransport creates a new MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// AddResponse appends a canned response (or error) for the next request.
func (mt *MockTransport) AddResponse(resp *http.Response, err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.responses = append(mt.responses, resp)
	mt.errors = append(mt.errors, err)
}

// AddTextResponse is a helper that adds a plain-text response.
func (mt *MockTransport) AddTextResponse(status int, body string, headers map[string]string) {
	resp := &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
	resp.Header.Set("Content-Type", "text/plain")
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	mt.AddResponse(resp, nil)
}

// Requests returns all recorded requests.
func (mt *MockTransport) Requests() []*http.Request {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]*http.Request(nil), mt.requests...)
}

// RoundTrip implements http.RoundTripper.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.requests = append(mt.requests, req)

	if mt.index >= len(mt.responses) {
		return nil, fmt.Errorf("fetchtest: no more mock responses configured")
	}

	resp := mt.responses[mt.index]
	err := mt.errors[mt.index]
	mt.index++

	return resp, err
}

// Reset clears all recorded requests and canned responses.
func (mt *MockTransport) Reset() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.requests = nil
	mt.responses = nil
	mt.errors = nil
	mt.index = 0
}
