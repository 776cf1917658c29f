package fetch

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfetch/fetch-go/fetchtest"
)

func TestDecodeBodyCodings(t *testing.T) {
	payload := "hello world, compressed seven ways"

	tests := []struct {
		name     string
		coding   string
		encoding string
	}{
		{name: "gzip", coding: "gzip", encoding: "gzip"},
		{name: "x-gzip alias", coding: "gzip", encoding: "x-gzip"},
		{name: "gzip mixed case", coding: "gzip", encoding: "GZip"},
		{name: "brotli", coding: "br", encoding: "br"},
		{name: "zlib-wrapped deflate", coding: "deflate", encoding: "deflate"},
		{name: "raw deflate", coding: "deflate-raw", encoding: "deflate"},
		{name: "x-deflate alias", coding: "deflate", encoding: "x-deflate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := fetchtest.Compress(tt.coding, []byte(payload))
			require.NoError(t, err)

			body := decodeBody(tt.encoding, io.NopCloser(bytes.NewReader(compressed)))
			data, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, payload, string(data))
			assert.NoError(t, body.Close())
		})
	}
}

func TestDecodeBodyUnknownEncodingPassesThrough(t *testing.T) {
	for _, encoding := range []string{"", "identity", "zstd", "whatever"} {
		body := decodeBody(encoding, io.NopCloser(strings.NewReader("as-is")))
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "as-is", string(data))
	}
}

func TestDecodeBodyEmptyGzip(t *testing.T) {
	// An empty stream never commits to a decoder; it just ends.
	body := decodeBody("gzip", io.NopCloser(bytes.NewReader(nil)))
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDecodeBodyTruncatedGzipYieldsContent(t *testing.T) {
	payload := strings.Repeat("slightly invalid but fully present ", 20)
	compressed, err := fetchtest.Compress("gzip", []byte(payload))
	require.NoError(t, err)

	// Chop into the trailer: the deflate stream is complete, the gzip
	// trailer's size field is missing. The decoded content must still come
	// through whole.
	truncated := compressed[:len(compressed)-4]

	body := decodeBody("gzip", io.NopCloser(bytes.NewReader(truncated)))
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestDecodeBodyCorruptGzipSurfacesOnRead(t *testing.T) {
	body := decodeBody("gzip", io.NopCloser(strings.NewReader("not gzip at all")))
	_, err := io.ReadAll(body)
	assert.Error(t, err)
}

func TestDecodeBodyDeflateDetectionByte(t *testing.T) {
	payload := "framing probe"

	zlibData, err := fetchtest.Compress("deflate", []byte(payload))
	require.NoError(t, err)
	rawData, err := fetchtest.Compress("deflate-raw", []byte(payload))
	require.NoError(t, err)

	// The zlib header's first byte has a 0x8 low nibble; raw streams do not
	// here, which is what the detector keys on.
	assert.Equal(t, byte(0x08), zlibData[0]&0x0f)
	assert.NotEqual(t, byte(0x08), rawData[0]&0x0f)

	for _, data := range [][]byte{zlibData, rawData} {
		body := decodeBody("deflate", io.NopCloser(bytes.NewReader(data)))
		got, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, payload, string(got))
	}
}
