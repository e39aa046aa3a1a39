package blob

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedis(client, "shophub-test")
}

func TestRedisRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, newTestRedis(t))
}

func TestRedisKeysArePrefixed(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedis(client, "shophub-test")
	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[]`)))

	value, err := mr.Get("shophub-test:cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
