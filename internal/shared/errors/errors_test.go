package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		err := &AppError{Message: "plain"}
		assert.Equal(t, "plain", err.Error())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		err := Internal(errors.New("db down"))
		assert.Equal(t, "internal server error: db down", err.Error())
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		code   string
		kind   error
	}{
		{"unauthorized", Unauthorized(""), http.StatusUnauthorized, "unauthorized", ErrUnauthorized},
		{"rate limited", RateLimited(""), http.StatusTooManyRequests, "rate_limited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.Equal(t, tt.code, tt.err.ToResponse().Code)
		})
	}

	assert.Equal(t, "Invalid or expired token", Unauthorized("Invalid or expired token").Message)
}

func TestAs(t *testing.T) {
	appErr, ok := As(fmt.Errorf("limit: %w", RateLimited("")))
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, appErr.StatusCode)

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)
}
