package fetch

import (
	"io"
	"iter"
)

// chunkSize is the read granularity of Response.Chunks.
const chunkSize = 32 * 1024

// Chunks returns an iterator over the decoded response body.
// Use with for-range syntax:
//
//	for chunk, err := range resp.Chunks() {
//	    if err != nil {
//	        return err
//	    }
//	    process(chunk)
//	}
//
// The body is closed when iteration finishes, whether by exhaustion, error,
// or an early break. Each yielded chunk is only valid until the next
// iteration. A nil body yields nothing.
func (r *Response) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if r.Body == nil {
			return
		}
		defer r.Body.Close()

		buf := make([]byte, chunkSize)
		for {
			n, err := r.Body.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}
