package fetch

import (
	"net/url"
	"strings"
)

// URLSearchParams is an ordered list of name/value pairs rendered as
// application/x-www-form-urlencoded. Unlike url.Values, it preserves
// insertion order when serializing.
type URLSearchParams struct {
	pairs [][2]string
}

// NewURLSearchParams creates an empty parameter list.
func NewURLSearchParams() *URLSearchParams {
	return &URLSearchParams{}
}

// Append adds a name/value pair to the end of the list.
func (p *URLSearchParams) Append(name, value string) {
	p.pairs = append(p.pairs, [2]string{name, value})
}

// Set replaces all pairs named name with a single pair at the position of
// the first occurrence, or appends if absent.
func (p *URLSearchParams) Set(name, value string) {
	out := p.pairs[:0]
	replaced := false
	for _, pair := range p.pairs {
		if pair[0] != name {
			out = append(out, pair)
			continue
		}
		if !replaced {
			out = append(out, [2]string{name, value})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, [2]string{name, value})
	}
	p.pairs = out
}

// Get returns the first value for name, and whether any pair matched.
func (p *URLSearchParams) Get(name string) (string, bool) {
	for _, pair := range p.pairs {
		if pair[0] == name {
			return pair[1], true
		}
	}
	return "", false
}

// Delete removes all pairs named name.
func (p *URLSearchParams) Delete(name string) {
	out := p.pairs[:0]
	for _, pair := range p.pairs {
		if pair[0] != name {
			out = append(out, pair)
		}
	}
	p.pairs = out
}

// Len returns the number of pairs.
func (p *URLSearchParams) Len() int {
	return len(p.pairs)
}

// Encode serializes the pairs in insertion order using the urlencoded form
// rules: '+' for spaces, percent-escapes elsewhere.
func (p *URLSearchParams) Encode() string {
	var sb strings.Builder
	for i, pair := range p.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(pair[0]))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(pair[1]))
	}
	return sb.String()
}

// String implements fmt.Stringer with the encoded form.
func (p *URLSearchParams) String() string {
	return p.Encode()
}
