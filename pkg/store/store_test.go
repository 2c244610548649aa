package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/store"
)

type ticket struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Tags   []string `json:"tags,omitempty"`
}

func ticketKey(t *ticket) string { return t.ID }

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s store.Store[*ticket]) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	original := &ticket{ID: "t-1", Status: "open", Tags: []string{"a"}}
	require.NoError(t, s.Save(ctx, original))

	got, err := s.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, original, got)

	got.Status = "closed"
	got.Tags[0] = "changed"
	again, err := s.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "open", again.Status, "stored value must not alias returned value")
	assert.Equal(t, []string{"a"}, again.Tags)

	require.NoError(t, s.Save(ctx, got))
	updated, err := s.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "closed", updated.Status)

	assert.ErrorIs(t, s.Save(ctx, &ticket{}), store.ErrEmptyKey)
}

func TestMemory(t *testing.T) {
	t.Parallel()

	s := store.NewMemory(ticketKey)
	exerciseStore(t, s)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryValueType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := store.NewMemory(func(t ticket) string { return t.ID })
	require.NoError(t, s.Save(ctx, ticket{ID: "v-1", Status: "open"}))

	got, err := s.Get(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, ticket{ID: "v-1", Status: "open"}, got)
}

func TestMemoryConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemory(ticketKey)
	require.NoError(t, s.Save(ctx, &ticket{ID: "c-1", Status: "open"}))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Save(ctx, &ticket{ID: "c-1", Status: "open"})
				return
			}
			_, err := s.Get(ctx, "c-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
