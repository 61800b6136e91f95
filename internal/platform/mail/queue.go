package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Queue accepts messages for later delivery, so a request handler can
// commit its write and respond without waiting on SMTP.
type Queue interface {
	Enqueue(ctx context.Context, msg Message) error
}

type redisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) Queue {
	return &redisQueue{rdb: rdb, key: key}
}

func (q *redisQueue) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("redisQueue.Enqueue: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("redisQueue.Enqueue: %w", err)
	}
	return nil
}
