package fetch

import (
	"net/http"
	"strings"
)

// Header names used by the orchestrator.
const (
	headerAccept          = "Accept"
	headerContentType     = "Content-Type"
	headerContentLength   = "Content-Length"
	headerContentEncoding = "Content-Encoding"
	headerLocation        = "Location"
)

// headerFromPairs converts an engine's flat [k0, v0, k1, v1, ...] raw header
// list into an http.Header. Each pair is applied with Set, so a repeated
// header name keeps only its last value. An odd trailing key is ignored.
func headerFromPairs(pairs []string) http.Header {
	h := make(http.Header, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

// headerToPairs flattens an http.Header into the engine's raw pair list.
func headerToPairs(h http.Header) []string {
	pairs := make([]string, 0, len(h)*2)
	for k, vs := range h {
		for _, v := range vs {
			pairs = append(pairs, k, v)
		}
	}
	return pairs
}

// cloneHeader deep-copies a header set. A nil input yields an empty header.
func cloneHeader(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vs := range h {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// mergeHeaderInputs builds a header set from any of the accepted header
// shapes: http.Header, map[string]string, or a flat [][2]string pair list.
// Later sources win on key conflicts.
func mergeHeaderInputs(dst http.Header, src any) http.Header {
	if dst == nil {
		dst = make(http.Header)
	}
	switch v := src.(type) {
	case nil:
	case http.Header:
		for k, vs := range v {
			dst.Del(k)
			for _, val := range vs {
				dst.Add(k, val)
			}
		}
	case map[string]string:
		for k, val := range v {
			dst.Set(k, val)
		}
	case [][2]string:
		for _, p := range v {
			dst.Set(p[0], p[1])
		}
	}
	return dst
}

// normalizeEncoding lowercases a Content-Encoding token for dispatch.
func normalizeEncoding(enc string) string {
	return strings.ToLower(strings.TrimSpace(enc))
}
