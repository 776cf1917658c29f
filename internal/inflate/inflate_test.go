package inflate

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func rawCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	return buf.Bytes()
}

// oneByteReader delivers a single byte per Read call, forcing the detector
// to work with minimal chunks.
type oneByteReader struct {
	data []byte
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestAutoReaderZlibWrapped(t *testing.T) {
	payload := []byte("zlib-wrapped payload")
	r := NewReader(bytes.NewReader(zlibCompress(t, payload)))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.NoError(t, r.Close())
}

func TestAutoReaderRaw(t *testing.T) {
	payload := []byte("raw deflate payload")
	r := NewReader(bytes.NewReader(rawCompress(t, payload)))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestAutoReaderByteAtATime(t *testing.T) {
	payload := []byte("dribbled in one byte at a time")
	for _, data := range [][]byte{zlibCompress(t, payload), rawCompress(t, payload)} {
		r := NewReader(&oneByteReader{data: data})
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

func TestAutoReaderEmptySource(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	var buf [8]byte
	n, err := r.Read(buf[:])
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, r.Close())
}
