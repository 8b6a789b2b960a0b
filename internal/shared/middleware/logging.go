package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unishowcase/server/internal/shared/logger"
)

// Logging writes one access log line per request. Requests whose path is
// in skipPaths (probes, scrapes) are not logged unless they fail.
func Logging(log *logger.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		if _, ok := skip[path]; ok && status < 500 {
			return
		}

		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if route := c.FullPath(); route != "" && route != path {
			attrs = append(attrs, "route", route)
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		reqLog := log.WithContext(c.Request.Context())
		const msg = "HTTP Request"
		switch {
		case status >= 500:
			reqLog.Error(msg, attrs...)
		case status >= 400:
			reqLog.Warn(msg, attrs...)
		default:
			reqLog.Info(msg, attrs...)
		}
	}
}
