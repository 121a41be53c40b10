package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// AnswerCache maps a normalized question key to a previously generated
// answer. Best effort: callers treat read/write failures as cache misses.
type AnswerCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redisv9.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AnswerCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AnswerCache) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get answer failed: %w", err)
	}
	return raw, true, nil
}

func (c *AnswerCache) Set(ctx context.Context, key, answer string) error {
	if err := c.client.Set(ctx, c.redisKey(key), answer, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set answer failed: %w", err)
	}
	return nil
}

func (c *AnswerCache) redisKey(key string) string {
	return "faq:" + key
}
