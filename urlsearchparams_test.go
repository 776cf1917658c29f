package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLSearchParamsOrderPreserved(t *testing.T) {
	p := NewURLSearchParams()
	p.Append("z", "last-name-first")
	p.Append("a", "1")
	p.Append("z", "again")

	// url.Values would sort keys; the form serializer must not.
	assert.Equal(t, "z=last-name-first&a=1&z=again", p.Encode())
}

func TestURLSearchParamsEscaping(t *testing.T) {
	p := NewURLSearchParams()
	p.Append("q", "two words")
	p.Append("sym", "a&b=c")

	assert.Equal(t, "q=two+words&sym=a%26b%3Dc", p.Encode())
}

func TestURLSearchParamsSetReplacesInPlace(t *testing.T) {
	p := NewURLSearchParams()
	p.Append("k", "1")
	p.Append("mid", "m")
	p.Append("k", "2")

	p.Set("k", "3")
	assert.Equal(t, "k=3&mid=m", p.Encode())

	p.Set("new", "n")
	assert.Equal(t, "k=3&mid=m&new=n", p.Encode())
}

func TestURLSearchParamsGetDelete(t *testing.T) {
	p := NewURLSearchParams()
	p.Append("k", "1")
	p.Append("k", "2")

	v, ok := p.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	p.Delete("k")
	assert.Equal(t, 0, p.Len())
	_, ok = p.Get("k")
	assert.False(t, ok)
}
