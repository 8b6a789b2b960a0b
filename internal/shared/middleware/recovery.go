package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apperrors "github.com/unishowcase/server/internal/shared/errors"
	"github.com/unishowcase/server/internal/shared/logger"
)

// Recovery returns a middleware that recovers from panics.
// A nil log uses the default logger.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New(nil)
	}

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithContext(c.Request.Context()).Error("Panic recovered",
					"error", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				appErr := apperrors.Internal(fmt.Errorf("panic: %v", rec))
				c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
			}
		}()
		c.Next()
	}
}
