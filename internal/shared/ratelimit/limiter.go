package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a keyed caller may proceed within a window.
type Limiter interface {
	// Allow records one hit for key and reports whether it fits within limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Remaining returns how many hits are left in the current window.
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}
