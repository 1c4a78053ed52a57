package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "hrconsole"

// RedisRepository keeps metadata as plain string keys "<prefix>:<key>".
// Every mutation is announced on ChangesChannel(prefix) so other consoles
// sharing the same Redis can resync.
type RedisRepository struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisRepository(rdb redis.UniversalClient, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisRepository{rdb: rdb, prefix: prefix}
}

// ChangesChannel is the pub/sub channel mutations are published on.
func ChangesChannel(prefix string) string {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return prefix + ":changes"
}

func (r *RedisRepository) redisKey(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.redisKey(key), value, 0)
		p.Publish(ctx, ChangesChannel(r.prefix), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	_, err := r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.redisKey(key))
		p.Publish(ctx, ChangesChannel(r.prefix), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
