package fetch

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// FormData is an ordered sequence of (name, value) entries, where a value is
// either a string or a blob. It is rendered on the wire as
// multipart/form-data with a generated boundary.
type FormData struct {
	entries []formEntry
}

type formEntry struct {
	name string

	// Exactly one of str/blob is used; blob wins when non-nil.
	str  string
	blob BlobLike
}

// NewFormData creates an empty form.
func NewFormData() *FormData {
	return &FormData{}
}

// Append adds a string entry to the end of the form.
func (f *FormData) Append(name, value string) {
	f.entries = append(f.entries, formEntry{name: name, str: value})
}

// AppendBlob adds a blob entry to the end of the form.
// If the blob is named (a *File or equivalent), its name becomes the part's
// filename; otherwise "blob" is used.
func (f *FormData) AppendBlob(name string, b BlobLike) {
	f.entries = append(f.entries, formEntry{name: name, blob: b})
}

// Set replaces all entries named name with a single string entry at the
// position of the first occurrence, or appends if absent.
func (f *FormData) Set(name, value string) {
	out := f.entries[:0]
	replaced := false
	for _, e := range f.entries {
		if e.name != name {
			out = append(out, e)
			continue
		}
		if !replaced {
			out = append(out, formEntry{name: name, str: value})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, formEntry{name: name, str: value})
	}
	f.entries = out
}

// Get returns the first string value for name, and whether any entry matched.
// A blob entry matches with an empty string value.
func (f *FormData) Get(name string) (string, bool) {
	for _, e := range f.entries {
		if e.name == name {
			return e.str, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (f *FormData) Len() int {
	return len(f.entries)
}

// newMultipartBoundary generates a boundary of the form
// formdata-<16 lowercase hex chars> from 8 bytes of crypto randomness.
func newMultipartBoundary() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("multipart boundary: %w", err)
	}
	return "formdata-" + hex.EncodeToString(buf[:]), nil
}

// multipartFooter returns the terminating delimiter for a boundary.
func multipartFooter(boundary string) string {
	return "--" + boundary + "--\r\n\r\n"
}

// renderPartHeader renders one entry's header block:
//
//	--B\r\n
//	Content-Disposition: form-data; name="<name>"            (string entry)
//	Content-Disposition: form-data; name="<n>"; filename="<f>"\r\n
//	Content-Type: <type>                                     (blob entry)
//	\r\n\r\n
//
// Names and filenames are emitted verbatim; callers must supply values safe
// for header inclusion.
func renderPartHeader(boundary string, e formEntry) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("--")
	buf.WriteString(boundary)
	buf.WriteString("\r\nContent-Disposition: form-data; name=\"")
	buf.WriteString(e.name)
	buf.WriteString("\"")
	if e.blob != nil {
		filename := "blob"
		if named, ok := e.blob.(namedBlob); ok && named.Name() != "" {
			filename = named.Name()
		}
		contentType := e.blob.ContentType()
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		buf.WriteString("; filename=\"")
		buf.WriteString(filename)
		buf.WriteString("\"\r\nContent-Type: ")
		buf.WriteString(contentType)
	}
	buf.WriteString("\r\n\r\n")

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}

// multipartLength precomputes the exact encoded byte length of the form for
// the given boundary: per entry, header block + value + CRLF, plus footer.
func multipartLength(f *FormData, boundary string) int64 {
	var total int64
	for _, e := range f.entries {
		total += int64(len(renderPartHeader(boundary, e)))
		if e.blob != nil {
			total += e.blob.Size()
		} else {
			total += int64(len(e.str))
		}
		total += 2
	}
	total += int64(len(multipartFooter(boundary)))
	return total
}

// newMultipartReader returns a stream over the encoded form. Segments are
// materialized lazily so blob streams are only opened as the encoder reaches
// them; each call produces an independent stream of the same bytes.
func newMultipartReader(f *FormData, boundary string) io.Reader {
	segs := make([]func() io.Reader, 0, len(f.entries)*3+1)
	for _, e := range f.entries {
		e := e
		segs = append(segs, func() io.Reader {
			return strings.NewReader(string(renderPartHeader(boundary, e)))
		})
		if e.blob != nil {
			segs = append(segs, e.blob.NewReader)
		} else {
			segs = append(segs, func() io.Reader { return strings.NewReader(e.str) })
		}
		segs = append(segs, func() io.Reader { return strings.NewReader("\r\n") })
	}
	segs = append(segs, func() io.Reader { return strings.NewReader(multipartFooter(boundary)) })
	return &segmentReader{segs: segs}
}

// segmentReader chains lazily-opened sub-readers into one stream.
type segmentReader struct {
	segs []func() io.Reader
	cur  io.Reader
}

// Read implements io.Reader.
func (r *segmentReader) Read(p []byte) (int, error) {
	for {
		if r.cur == nil {
			if len(r.segs) == 0 {
				return 0, io.EOF
			}
			r.cur = r.segs[0]()
			r.segs = r.segs[1:]
		}
		n, err := r.cur.Read(p)
		if err == io.EOF {
			r.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}
