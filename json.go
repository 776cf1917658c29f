package fetch

import (
	"encoding/json"
)

// JSON marshals v into a blob body carrying an application/json content
// type. Use it with WithBody:
//
//	resp, err := client.Fetch(ctx, url,
//	    fetch.WithMethod("POST"),
//	    fetch.WithBody(fetch.MustJSON(payload)),
//	)
func JSON(v any) (*Blob, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return NewBlob(data, "application/json;charset=UTF-8"), nil
}

// MustJSON is JSON for statically-marshalable values; it panics on a
// marshal failure.
func MustJSON(v any) *Blob {
	b, err := JSON(v)
	if err != nil {
		panic(err)
	}
	return b
}

// JSON reads the entire body, closes it, and unmarshals it into v.
func (r *Response) JSON(v any) error {
	data, err := r.Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
