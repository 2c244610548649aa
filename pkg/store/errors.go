package store

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrEmptyKey     = errors.New("resource key is empty")
	ErrEncodeFailed = errors.New("failed to encode resource")
	ErrDecodeFailed = errors.New("failed to decode resource")
)
