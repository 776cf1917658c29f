package fetch

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textResponse(body string) *Response {
	return &Response{
		Status:     200,
		StatusText: "OK",
		Body:       io.NopCloser(strings.NewReader(body)),
		Type:       ResponseDefault,
	}
}

func TestResponseText(t *testing.T) {
	text, err := textResponse("payload").Text()
	require.NoError(t, err)
	assert.Equal(t, "payload", text)
}

func TestResponseNilBodyReadsEmpty(t *testing.T) {
	resp := &Response{Status: 204}

	data, err := resp.Bytes()
	require.NoError(t, err)
	assert.Empty(t, data)

	text, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, "", text)

	assert.NoError(t, resp.Close())
}

func TestResponseJSON(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	require.NoError(t, textResponse(`{"a": 7}`).JSON(&out))
	assert.Equal(t, 7, out.A)
}

func TestResponseOk(t *testing.T) {
	assert.True(t, (&Response{Status: 200}).Ok())
	assert.True(t, (&Response{Status: 299}).Ok())
	assert.False(t, (&Response{Status: 304}).Ok())
	assert.False(t, (&Response{Status: 500}).Ok())
}

func TestResponseChunks(t *testing.T) {
	resp := textResponse(strings.Repeat("x", chunkSize+10))

	var total int
	for chunk, err := range resp.Chunks() {
		require.NoError(t, err)
		total += len(chunk)
	}
	assert.Equal(t, chunkSize+10, total)
}

func TestResponseChunksNilBody(t *testing.T) {
	resp := &Response{Status: 204}
	for range resp.Chunks() {
		t.Fatal("nil body must yield nothing")
	}
}

func TestCancelableBodySurfacesAbortReason(t *testing.T) {
	reason := errors.New("user navigated away")
	ctx, cancel := context.WithCancelCause(context.Background())

	body := &cancelableBody{ctx: ctx, body: io.NopCloser(strings.NewReader("unread"))}

	cancel(reason)

	var buf [8]byte
	_, err := body.Read(buf[:])
	assert.ErrorIs(t, err, reason)
}
