package fetch

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"
)

// MultipartStream is a pre-assembled multipart body carrying its own
// boundary. KnownLength returns the total encoded length, or -1 when it is
// unknown. Any type satisfying the interface is accepted.
type MultipartStream interface {
	io.Reader
	Boundary() string
	KnownLength() int64
}

// bodyState is the uniform result of body extraction: a byte stream (nil for
// an empty or absent body), a content length (-1 unknown, which selects
// chunked framing), and a synthesized content type ("" none).
//
// remake, when non-nil, opens a fresh stream over the same bytes; the
// orchestrator uses it to resend the body across a redirect. One-shot
// streams have no remake and cannot be resent.
type bodyState struct {
	reader      io.Reader
	remake      func() io.Reader
	length      int64
	contentType string
}

// empty reports whether there are no bytes to send.
func (b *bodyState) empty() bool {
	return b.reader == nil
}

// extractBody classifies a polymorphic body input and produces its bodyState.
// Classification is an ordered probe; the first matching variant wins:
//
//  1. string
//  2. *URLSearchParams
//  3. BlobLike
//  4. contiguous bytes ([]byte, *bytes.Buffer, *bytes.Reader)
//  5. *FormData
//  6. MultipartStream
//  7. io.Reader
//  8. iter.Seq[[]byte]
//  9. <-chan []byte
// 10. anything else, stringified
//
// Extraction performs no I/O. *bytes.Buffer and *bytes.Reader inputs are
// copied out so the resulting stream is replayable; []byte and blob
// payloads are shared, not copied.
func extractBody(input any) (*bodyState, error) {
	if input == nil {
		return &bodyState{length: 0}, nil
	}

	switch v := input.(type) {
	case string:
		return textBody(v, "text/plain;charset=UTF-8"), nil

	case *URLSearchParams:
		return textBody(v.Encode(), "application/x-www-form-urlencoded;charset=UTF-8"), nil

	case BlobLike:
		if v.Size() == 0 {
			return &bodyState{length: 0, contentType: v.ContentType()}, nil
		}
		return &bodyState{
			reader:      v.NewReader(),
			remake:      v.NewReader,
			length:      v.Size(),
			contentType: v.ContentType(),
		}, nil

	case []byte:
		return bytesBody(v), nil

	case *bytes.Buffer:
		return bytesBody(append([]byte(nil), v.Bytes()...)), nil

	case *bytes.Reader:
		data, _ := io.ReadAll(v)
		return bytesBody(data), nil

	case *FormData:
		boundary, err := newMultipartBoundary()
		if err != nil {
			return nil, err
		}
		return &bodyState{
			reader:      newMultipartReader(v, boundary),
			remake:      func() io.Reader { return newMultipartReader(v, boundary) },
			length:      multipartLength(v, boundary),
			contentType: "multipart/form-data; boundary=" + boundary,
		}, nil

	case MultipartStream:
		return &bodyState{
			reader:      v,
			length:      v.KnownLength(),
			contentType: "multipart/form-data; boundary=" + v.Boundary(),
		}, nil

	case io.Reader:
		return &bodyState{reader: v, length: -1}, nil

	case iter.Seq[[]byte]:
		return &bodyState{reader: newIterReader(v), length: -1}, nil

	case <-chan []byte:
		return &bodyState{reader: &chanReader{ch: v}, length: -1}, nil

	case chan []byte:
		return &bodyState{reader: &chanReader{ch: v}, length: -1}, nil

	case fmt.Stringer:
		return textBody(v.String(), "text/plain;charset=UTF-8"), nil

	default:
		return textBody(fmt.Sprint(v), "text/plain;charset=UTF-8"), nil
	}
}

// textBody builds a replayable state over a string payload.
// A zero-length payload yields a nil stream but keeps the content type.
func textBody(s, contentType string) *bodyState {
	if len(s) == 0 {
		return &bodyState{length: 0, contentType: contentType}
	}
	return &bodyState{
		reader:      strings.NewReader(s),
		remake:      func() io.Reader { return strings.NewReader(s) },
		length:      int64(len(s)),
		contentType: contentType,
	}
}

// bytesBody builds a replayable state over a byte payload with no type.
func bytesBody(data []byte) *bodyState {
	if len(data) == 0 {
		return &bodyState{length: 0}
	}
	return &bodyState{
		reader:      bytes.NewReader(data),
		remake:      func() io.Reader { return bytes.NewReader(data) },
		length:      int64(len(data)),
	}
}

// newIterReader adapts a byte-chunk sequence into a pull-based stream.
func newIterReader(seq iter.Seq[[]byte]) io.Reader {
	next, stop := iter.Pull(seq)
	return &iterReader{next: next, stop: stop}
}

type iterReader struct {
	next func() ([]byte, bool)
	stop func()
	buf  []byte
	done bool
}

// Read implements io.Reader.
func (r *iterReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.done {
			return 0, io.EOF
		}
		chunk, ok := r.next()
		if !ok {
			r.done = true
			r.stop()
			return 0, io.EOF
		}
		r.buf = chunk
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// chanReader adapts a channel of byte chunks into a stream.
// A closed channel ends the stream.
type chanReader struct {
	ch  <-chan []byte
	buf []byte
}

// Read implements io.Reader.
func (r *chanReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		chunk, ok := <-r.ch
		if !ok {
			return 0, io.EOF
		}
		r.buf = chunk
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
