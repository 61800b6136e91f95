package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	rdb *redis.Client
}

func NewRedisKV(rdb *redis.Client) KV {
	return &redisKV{rdb: rdb}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
