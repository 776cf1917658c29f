package fetch

import (
	"bytes"
	"io"
)

// BlobLike is the capability a body value needs to be treated as a blob:
// a known size, a MIME type, and the ability to open a fresh byte stream.
// Any type satisfying it is accepted, not just *Blob; a blob produced by
// another package is equivalent to one from this package.
type BlobLike interface {
	Size() int64
	ContentType() string
	NewReader() io.Reader
}

// namedBlob is the additional capability of file-flavored blobs.
// Multipart encoding uses the name as the part's filename.
type namedBlob interface {
	BlobLike
	Name() string
}

// Blob is an immutable byte payload with an associated MIME type.
type Blob struct {
	data []byte
	typ  string
}

// NewBlob creates a blob over data with the given MIME type.
// The data is not copied; callers must not mutate it afterwards.
func NewBlob(data []byte, contentType string) *Blob {
	return &Blob{data: data, typ: contentType}
}

// Size returns the payload length in bytes.
func (b *Blob) Size() int64 {
	return int64(len(b.data))
}

// ContentType returns the blob's MIME type, which may be empty.
func (b *Blob) ContentType() string {
	return b.typ
}

// NewReader opens a fresh reader over the payload.
// Each call returns an independent stream positioned at the start.
func (b *Blob) NewReader() io.Reader {
	return bytes.NewReader(b.data)
}

// Bytes returns the underlying payload.
func (b *Blob) Bytes() []byte {
	return b.data
}

// File is a named blob.
type File struct {
	*Blob
	name string
}

// NewFile creates a file over data with the given name and MIME type.
func NewFile(data []byte, name, contentType string) *File {
	return &File{Blob: NewBlob(data, contentType), name: name}
}

// Name returns the file's name.
func (f *File) Name() string {
	return f.name
}
