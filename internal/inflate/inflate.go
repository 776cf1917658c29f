// Package inflate decompresses deflate-encoded streams whose framing is not
// known in advance. HTTP servers send "Content-Encoding: deflate" for both
// zlib-wrapped and raw DEFLATE data; the two are distinguished by the first
// byte, whose low nibble is 0x8 for a zlib header.
package inflate

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// NewReader returns a reader that decompresses deflate data from r,
// autodetecting zlib-wrapped vs raw framing from the first byte. The
// detection is deferred until the first byte is observed: an empty source
// yields EOF without ever committing to a variant.
func NewReader(r io.Reader) io.ReadCloser {
	return &autoReader{src: r}
}

type autoReader struct {
	src io.Reader
	dec io.ReadCloser
	err error
}

// Read implements io.Reader.
func (a *autoReader) Read(p []byte) (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	if a.dec == nil {
		if err := a.detect(); err != nil {
			a.err = err
			return 0, err
		}
	}
	return a.dec.Read(p)
}

// detect reads the first byte of the source and commits to a framing.
func (a *autoReader) detect() error {
	var first [1]byte
	n, err := a.src.Read(first[:])
	for n == 0 && err == nil {
		n, err = a.src.Read(first[:])
	}
	if n == 0 {
		if err == nil || err == io.EOF {
			return io.EOF
		}
		return err
	}

	combined := io.MultiReader(bytes.NewReader(first[:1]), a.src)
	if first[0]&0x0f == 0x08 {
		zr, zerr := zlib.NewReader(combined)
		if zerr != nil {
			return zerr
		}
		a.dec = zr
		return nil
	}
	a.dec = flate.NewReader(combined)
	return nil
}

// Close implements io.Closer.
func (a *autoReader) Close() error {
	if a.dec != nil {
		return a.dec.Close()
	}
	return nil
}
