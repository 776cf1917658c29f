package fetch

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"

	"github.com/webfetch/fetch-go/internal/inflate"
)

// decodeBody wraps a response body stream in the decoder named by encoding.
// Unknown encodings (and identity) pass the body through untouched. The
// returned stream owns the underlying body: closing it closes both.
//
// Decoders are lazy: nothing is read from the body until the consumer reads
// the decoded stream, so a malformed payload surfaces on read, not here.
func decodeBody(encoding string, body io.ReadCloser) io.ReadCloser {
	switch normalizeEncoding(encoding) {
	case "gzip", "x-gzip":
		return &decodedBody{dec: &lazyGzipReader{src: body}, underlying: body}
	case "br":
		return &decodedBody{dec: brotli.NewReader(body), underlying: body}
	case "deflate", "x-deflate":
		return &decodedBody{dec: inflate.NewReader(body), underlying: body}
	default:
		return body
	}
}

// decodedBody adapts a decoder over a response body. A decoder that fails
// with io.ErrUnexpectedEOF after producing output is treated as cleanly
// finished: servers flush compressed payloads without final trailers often
// enough that a truncated-but-valid stream must still yield its content.
type decodedBody struct {
	dec        io.Reader
	underlying io.ReadCloser
	produced   bool
}

// Read implements io.Reader.
func (d *decodedBody) Read(p []byte) (int, error) {
	n, err := d.dec.Read(p)
	if n > 0 {
		d.produced = true
	}
	if err == io.ErrUnexpectedEOF && d.produced {
		err = io.EOF
	}
	return n, err
}

// Close implements io.Closer.
func (d *decodedBody) Close() error {
	if c, ok := d.dec.(io.Closer); ok {
		c.Close()
	}
	return d.underlying.Close()
}

// lazyGzipReader defers gzip header parsing to the first read, so an empty
// body yields EOF instead of a header error at construction time.
type lazyGzipReader struct {
	src io.Reader
	zr  *gzip.Reader
	err error
}

// Read implements io.Reader.
func (l *lazyGzipReader) Read(p []byte) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	if l.zr == nil {
		zr, err := gzip.NewReader(l.src)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			l.err = err
			return 0, err
		}
		l.zr = zr
	}
	return l.zr.Read(p)
}

// Close implements io.Closer.
func (l *lazyGzipReader) Close() error {
	if l.zr != nil {
		return l.zr.Close()
	}
	return nil
}
