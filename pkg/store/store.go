package store

import "context"

// Store loads and persists resources of type T by identifier.
type Store[T any] interface {
	// Get returns the resource stored under id or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (T, error)
	// Save inserts or replaces v under the key returned by the store's KeyFunc.
	Save(ctx context.Context, v T) error
}

// KeyFunc returns the identifier a resource is stored under.
type KeyFunc[T any] func(T) string
