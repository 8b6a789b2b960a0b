package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/unishowcase/server/internal/shared/errors"
	"github.com/unishowcase/server/internal/shared/requestctx"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// UserIDKey is the gin context key for the user ID.
	UserIDKey = "user_id"
	// EmailKey is the gin context key for the email.
	EmailKey = "email"
)

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*Identity, error)
}

// Auth returns a middleware that validates bearer tokens.
// A valid token sets user_id and email on the context.
// When optional is true, missing or invalid tokens pass through anonymously.
func Auth(validator TokenValidator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			if !optional {
				abortUnauthorized(c, "Authorization header required")
				return
			}
			c.Next()
			return
		}

		identity, err := validator.ValidateToken(token)
		if err != nil {
			if !optional {
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			c.Next()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(EmailKey, identity.Email)
		c.Request = c.Request.WithContext(requestctx.WithUserID(c.Request.Context(), identity.UserID))

		c.Next()
	}
}

// RequireAuth returns a middleware that requires a valid token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, false)
}

// OptionalAuth returns a middleware that accepts anonymous requests.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, true)
}

func abortUnauthorized(c *gin.Context, message string) {
	appErr := apperrors.Unauthorized(message)
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

// UserID returns the authenticated user ID.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// MustUserID returns the authenticated user ID or aborts with 401.
func MustUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := UserID(c)
	if !ok {
		abortUnauthorized(c, "Unauthorized")
	}
	return userID, ok
}
