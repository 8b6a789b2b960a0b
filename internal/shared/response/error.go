package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/unishowcase/server/internal/shared/errors"
)

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// BadRequest sends a 400 response for malformed input.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "invalid_request", message)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// ErrorMapping maps a domain error to an HTTP response.
// An empty Message uses the error text.
type ErrorMapping struct {
	Err     error
	Status  int
	Code    string
	Message string
}

// HandleError writes the first mapping matching err.
// Returns true if the error was handled.
func HandleError(c *gin.Context, err error, mappings []ErrorMapping) bool {
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			msg := m.Message
			if msg == "" {
				msg = m.Err.Error()
			}
			Error(c, m.Status, m.Code, msg)
			return true
		}
	}
	return false
}

// HandleErrorWithDefault handles an error with a 500 fallback.
// An AppError in err's chain supplies its own status and code.
func HandleErrorWithDefault(c *gin.Context, err error, mappings []ErrorMapping) {
	if HandleError(c, err, mappings) {
		return
	}
	_ = c.Error(err)
	if appErr, ok := apperrors.As(err); ok && appErr.StatusCode != http.StatusInternalServerError {
		Error(c, appErr.StatusCode, appErr.Code, appErr.Message)
		return
	}
	InternalError(c)
}
