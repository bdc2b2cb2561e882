package slot

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the value at a fixed key, no TTL: the snapshot lives until
// the next full rewrite.
type RedisSlot struct {
	client *redis.Client
	key    string
}

func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (r *RedisSlot) Read(ctx context.Context) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisSlot) Write(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisSlot) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *RedisSlot) Backend() string { return "redis" }
