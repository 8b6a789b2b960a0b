package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/unishowcase/server/internal/shared/errors"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/ratelimit"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Scope namespaces the keys, e.g. "collaborate".
	Scope  string
	Limit  int
	Window time.Duration
	// KeyFunc defaults to the user ID, falling back to client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a middleware that limits requests with limiter.
// A nil limiter disables limiting. Limiter errors fail open.
func RateLimit(limiter ratelimit.Limiter, cfg RateLimitConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = userOrIPKey
	}

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := cfg.Scope + ":" + cfg.KeyFunc(c)
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			if log != nil {
				log.WithContext(ctx).Warn("rate limiter unavailable", "scope", cfg.Scope, logger.Err(err))
			}
			c.Next()
			return
		}

		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		if remaining, err := limiter.Remaining(ctx, key, cfg.Limit, cfg.Window); err == nil {
			c.Header(RateLimitRemaining, strconv.Itoa(remaining))
		}

		if !allowed {
			c.Header(RetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			appErr := apperrors.RateLimited("")
			c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
			return
		}

		c.Next()
	}
}

func userOrIPKey(c *gin.Context) string {
	if userID, ok := UserID(c); ok {
		return "user:" + userID.String()
	}
	return "ip:" + c.ClientIP()
}
