package ratelimit

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerConfig configures the circuit breaker around a Limiter.
type BreakerConfig struct {
	// Failures is the number of consecutive errors that opens the breaker.
	Failures uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
}

// breakerLimiter stops calling the store while it is failing.
// Callers receive gobreaker.ErrOpenState and are expected to fail open.
type breakerLimiter struct {
	inner   Limiter
	breaker *gobreaker.CircuitBreaker[bool]
}

// WithBreaker wraps inner with a circuit breaker.
func WithBreaker(inner Limiter, cfg BreakerConfig, log *zap.Logger) Limiter {
	if cfg.Failures == 0 {
		cfg.Failures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "ratelimit",
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("rate limiter breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &breakerLimiter{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
	}
}

func (b *breakerLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return b.breaker.Execute(func() (bool, error) {
		return b.inner.Allow(ctx, key, limit, window)
	})
}

func (b *breakerLimiter) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	// Reads are cheap and never trip the breaker; skip them while it is open.
	if b.breaker.State() == gobreaker.StateOpen {
		return 0, gobreaker.ErrOpenState
	}
	return b.inner.Remaining(ctx, key, limit, window)
}

var _ Limiter = (*breakerLimiter)(nil)
