package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis stores each resource as a JSON string under "<prefix>:<kind>:<id>".
type Redis[T any] struct {
	client redis.Cmdable
	prefix string
	key    KeyFunc[T]
}

// NewRedis creates a store for resources of the given kind. An empty prefix
// leaves keys as "<kind>:<id>".
func NewRedis[T any](client redis.Cmdable, prefix, kind string, key KeyFunc[T]) *Redis[T] {
	parts := make([]string, 0, 2)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, kind)

	return &Redis[T]{
		client: client,
		prefix: strings.Join(parts, ":") + ":",
		key:    key,
	}
}

func (r *Redis[T]) Get(ctx context.Context, id string) (T, error) {
	data, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if err != nil {
		var zero T
		if errors.Is(err, redis.Nil) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return zero, fmt.Errorf("get %s%s: %w", r.prefix, id, err)
	}
	return decode[T](data)
}

func (r *Redis[T]) Save(ctx context.Context, v T) error {
	id := r.key(v)
	if id == "" {
		return ErrEmptyKey
	}
	data, err := encode(v)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s%s: %w", r.prefix, id, err)
	}
	return nil
}
