package store

import (
	"errors"

	"github.com/goccy/go-json"
)

func encode[T any](v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return data, nil
}

// decode allocates the pointee when T is a pointer type, so both Article
// and *Article decode into a fresh value.
func decode[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, errors.Join(ErrDecodeFailed, err)
	}
	return v, nil
}
