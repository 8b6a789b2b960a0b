package badge

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/middleware"
	"github.com/unishowcase/server/internal/shared/response"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for badges.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new badge handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers public badge routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	badges := r.Group("/badges")
	{
		badges.GET("", h.List)
		badges.GET("/definitions", h.Definitions)
	}
}

// RegisterProtectedRoutes registers badge routes that require auth.
// checkMiddleware runs before the batch check only.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup, checkMiddleware ...gin.HandlerFunc) {
	check := append(append([]gin.HandlerFunc{}, checkMiddleware...), h.Check)
	r.POST("/badges", check...)
}

// List handles listing a user's badges.
//
//	@Summary		List badges
//	@Description	Get the badges of a user, newest first. Defaults to the caller.
//	@Tags			Badges
//	@Produce		json
//	@Param			userId	query		string	false	"User ID"
//	@Success		200		{object}	ListResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/badges [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := h.targetUser(c)
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	badges, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.HandleErrorWithDefault(c, err, nil)
		return
	}

	out := make([]*BadgeResponse, len(badges))
	for i, b := range badges {
		out[i] = ToBadgeResponse(b)
	}
	c.JSON(http.StatusOK, ListResponse{Badges: out})
}

// Definitions handles the badge catalog.
//
//	@Summary		Badge catalog
//	@Description	Get every badge that can be earned
//	@Tags			Badges
//	@Produce		json
//	@Success		200	{object}	DefinitionsResponse
//	@Router			/badges/definitions [get]
func (h *Handler) Definitions(c *gin.Context) {
	c.JSON(http.StatusOK, DefinitionsResponse{Definitions: Definitions()})
}

// Check handles a batch badge check for the caller.
//
//	@Summary		Check badges
//	@Description	Evaluate every badge rule for the caller and award what is earned
//	@Tags			Badges
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	CheckResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Failure		429	{object}	response.ErrorResponse
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/badges [post]
func (h *Handler) Check(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	awarded, err := h.service.CheckAll(c.Request.Context(), userID)
	if err != nil {
		if len(awarded) == 0 {
			response.HandleErrorWithDefault(c, err, nil)
			return
		}
		logger.WithContext(c.Request.Context(), h.logger).Warn("badge check partially failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, newCheckResponse(awarded))
}

// targetUser resolves the userId query parameter, falling back to the caller.
func (h *Handler) targetUser(c *gin.Context) (uuid.UUID, bool) {
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		return id, err == nil
	}
	return middleware.UserID(c)
}
