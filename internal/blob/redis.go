package blob

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis keeps blobs in a Redis instance so several processes can share one
// storefront session.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedis wraps an existing client. All keys are stored under the given
// prefix to keep storefront state apart from other tenants of the instance.
func NewRedis(client *redis.Client, keyPrefix string) *Redis {
	return &Redis{client: client, keyPrefix: keyPrefix}
}

func (r *Redis) key(key string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, key)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blob %q: %w", key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set blob %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}
