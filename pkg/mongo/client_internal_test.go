package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	t.Parallel()

	opts := clientOptions(Config{
		ConnectionURL:   "mongodb://db.internal:27017",
		ConnectTimeout:  3 * time.Second,
		MaxPoolSize:     20,
		MinPoolSize:     2,
		MaxConnIdleTime: time.Minute,
	})
	require.NoError(t, opts.Validate())

	assert.Equal(t, []string{"db.internal:27017"}, opts.Hosts)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(20), *opts.MaxPoolSize)
	require.NotNil(t, opts.MinPoolSize)
	assert.Equal(t, uint64(2), *opts.MinPoolSize)
	require.NotNil(t, opts.RetryWrites)
	assert.True(t, *opts.RetryWrites)
}
