package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/middleware"
	"github.com/unishowcase/server/internal/shared/response"
)

// ViewResponse is a project as returned to a viewer.
type ViewResponse struct {
	Project    *model.Project   `json:"project"`
	OwnerID    uuid.UUID        `json:"ownerId"`
	OwnerBadge *model.BadgeType `json:"ownerBadge"`
}

// PublishResponse reports a publish and any badges it earned.
type PublishResponse struct {
	Message   string            `json:"message"`
	NewBadges []model.BadgeType `json:"newBadges"`
}

// Handler handles HTTP requests for projects.
type Handler struct {
	service *Service
}

// NewHandler creates a new project handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers public project routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/projects/:id", h.Get)
}

// RegisterProtectedRoutes registers project routes that require auth.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/projects/:id/publish", h.Publish)
}

// Get handles viewing a project.
//
//	@Summary		Get project
//	@Description	Get a project and count the view
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	ViewResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	result, err := h.service.View(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ViewResponse{
		Project:    result.Project,
		OwnerID:    result.Project.UserID,
		OwnerBadge: result.OwnerBadge,
	})
}

// Publish handles publishing a draft.
//
//	@Summary		Publish project
//	@Description	Publish a draft project you own
//	@Tags			Projects
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	PublishResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Failure		403	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id}/publish [post]
func (h *Handler) Publish(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	newBadges, err := h.service.Publish(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PublishResponse{
		Message:   "Project published successfully",
		NewBadges: newBadges,
	})
}

var errorMappings = []response.ErrorMapping{
	{Err: ErrProjectNotFound, Status: http.StatusNotFound, Code: "project_not_found", Message: "Project not found"},
	{Err: ErrNotProjectOwner, Status: http.StatusForbidden, Code: "forbidden", Message: "Forbidden"},
	{Err: ErrAlreadyPublished, Status: http.StatusBadRequest, Code: "already_published", Message: "Project is already published"},
}

// handleError handles service errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, errorMappings)
}
