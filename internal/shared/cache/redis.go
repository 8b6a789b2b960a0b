package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unishowcase/server/internal/shared/config"
)

const defaultDialTimeout = 5 * time.Second

// NewRedisClient creates a Redis client for the rate limiter and verifies the connection.
func NewRedisClient(cfg *config.RedisConfig) (redis.UniversalClient, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:       []string{cfg.Address},
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// Ping checks that Redis answers.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func Close(client redis.UniversalClient) error {
	return client.Close()
}
