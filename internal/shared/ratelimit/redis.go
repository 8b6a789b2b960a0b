package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// redisLimiter is a sliding-window limiter backed by a sorted set per key.
type redisLimiter struct {
	client redis.UniversalClient
}

// NewRedisLimiter creates a Redis sliding-window limiter.
func NewRedisLimiter(client redis.UniversalClient) Limiter {
	return &redisLimiter{client: client}
}

func (r *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := keyPrefix + key
	now := time.Now().UnixNano()

	count, err := r.count(ctx, fullKey, now, window)
	if err != nil {
		return false, err
	}
	if count >= int64(limit) {
		return false, nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, fullKey, redis.Z{
			Score:  float64(now),
			Member: strconv.FormatInt(now, 10),
		})
		pipe.Expire(ctx, fullKey, window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("record hit: %w", err)
	}
	return true, nil
}

func (r *redisLimiter) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	count, err := r.count(ctx, keyPrefix+key, time.Now().UnixNano(), window)
	if err != nil {
		return 0, err
	}
	return max(limit-int(count), 0), nil
}

// count drops expired hits and returns the number left in the window.
func (r *redisLimiter) count(ctx context.Context, fullKey string, now int64, window time.Duration) (int64, error) {
	windowStart := now - window.Nanoseconds()

	var card *redis.IntCmd
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(windowStart, 10))
		card = pipe.ZCard(ctx, fullKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count hits: %w", err)
	}
	return card.Val(), nil
}

var _ Limiter = (*redisLimiter)(nil)
