package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/store"
)

func newRedisStore(t *testing.T, prefix string) (*store.Redis[*ticket], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedis(client, prefix, "tickets", ticketKey), mr
}

func TestRedis(t *testing.T) {
	t.Parallel()

	s, mr := newRedisStore(t, "app")
	exerciseStore(t, s)

	raw, err := mr.Get("app:tickets:t-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t-1","status":"closed","tags":["changed"]}`, raw)
}

func TestRedisWithoutPrefix(t *testing.T) {
	t.Parallel()

	s, mr := newRedisStore(t, "")
	require.NoError(t, s.Save(context.Background(), &ticket{ID: "t-2", Status: "open"}))
	assert.True(t, mr.Exists("tickets:t-2"))
}

func TestRedisDecodeFailure(t *testing.T) {
	t.Parallel()

	s, mr := newRedisStore(t, "app")
	require.NoError(t, mr.Set("app:tickets:bad", "{not json"))

	_, err := s.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, store.ErrDecodeFailed)
}

func TestRedisUnavailable(t *testing.T) {
	t.Parallel()

	s, mr := newRedisStore(t, "app")
	mr.Close()

	_, err := s.Get(context.Background(), "t-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.Error(t, s.Save(context.Background(), &ticket{ID: "t-1"}))
}
