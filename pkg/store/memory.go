package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory keeps encoded resources in a map. Values are copied through the
// codec on every Save and Get, so callers never share memory with the store.
type Memory[T any] struct {
	key  KeyFunc[T]
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory[T any](key KeyFunc[T]) *Memory[T] {
	return &Memory[T]{
		key:  key,
		data: make(map[string][]byte),
	}
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	data, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decode[T](data)
}

func (m *Memory[T]) Save(_ context.Context, v T) error {
	id := m.key(v)
	if id == "" {
		return ErrEmptyKey
	}
	data, err := encode(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[id] = data
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored resources.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
