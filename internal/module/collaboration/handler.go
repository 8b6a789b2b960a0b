package collaboration

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/shared/middleware"
	"github.com/unishowcase/server/internal/shared/response"
)

// Handler handles HTTP requests for collaboration.
type Handler struct {
	service *Service
}

// NewHandler creates a new collaboration handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers collaboration routes on an authenticated group.
// createMiddleware runs before request creation only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, createMiddleware ...gin.HandlerFunc) {
	create := append(append([]gin.HandlerFunc{}, createMiddleware...), h.Create)

	projects := r.Group("/projects/:id/collaborate")
	{
		projects.POST("", create...)
		projects.GET("", h.ListForProject)
		projects.GET("/status", h.Status)
		projects.PATCH("/:requestId", h.Review)
		projects.DELETE("/:requestId", h.Cancel)
	}

	r.GET("/collaborate/pending", h.ListPending)
}

// ========== Requester Handlers ==========

// Create handles a request to join a project.
//
//	@Summary		Request to collaborate
//	@Description	Ask to join an in-progress project team
//	@Tags			Collaboration
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Project ID"
//	@Param			request	body		CreateRequest	true	"Join request"
//	@Success		201		{object}	CreateResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		429		{object}	response.ErrorResponse
//	@Router			/projects/{id}/collaborate [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	// Missing fields are rejected by the service, after the project checks.
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	requestID, err := h.service.Create(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateResponse{
		Message:   "Collaboration request sent successfully",
		RequestID: requestID,
	})
}

// Cancel handles withdrawal of a pending request.
//
//	@Summary		Cancel collaboration request
//	@Description	Withdraw your own pending request
//	@Tags			Collaboration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Project ID"
//	@Param			requestId	path		string	true	"Request ID"
//	@Success		200			{object}	MessageResponse
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		401			{object}	response.ErrorResponse
//	@Failure		403			{object}	response.ErrorResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Router			/projects/{id}/collaborate/{requestId} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id", "Invalid project ID")
	if !ok {
		return
	}
	requestID, ok := parseID(c, "requestId", "Invalid request ID")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), projectID, requestID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Request cancelled successfully"})
}

// Status handles the caller's request status lookup.
//
//	@Summary		Collaboration request status
//	@Description	Get your most recent request for a project
//	@Tags			Collaboration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	StatusResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Router			/projects/{id}/collaborate/status [get]
func (h *Handler) Status(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	req, err := h.service.Status(c.Request.Context(), projectID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := StatusResponse{HasRequest: req != nil}
	if req != nil {
		resp.Request = toRequestResponse(req)
	}
	c.JSON(http.StatusOK, resp)
}

// ========== Owner Handlers ==========

// Review handles an owner's accept or reject decision.
//
//	@Summary		Review collaboration request
//	@Description	Accept or reject a pending request
//	@Tags			Collaboration
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string			true	"Project ID"
//	@Param			requestId	path		string			true	"Request ID"
//	@Param			request		body		ReviewRequest	true	"Decision"
//	@Success		200			{object}	ReviewResponse
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		401			{object}	response.ErrorResponse
//	@Failure		403			{object}	response.ErrorResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Router			/projects/{id}/collaborate/{requestId} [patch]
func (h *Handler) Review(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id", "Invalid project ID")
	if !ok {
		return
	}
	requestID, ok := parseID(c, "requestId", "Invalid request ID")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidActionMessage)
		return
	}

	status, err := h.service.Review(c.Request.Context(), projectID, requestID, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	msg := "Request rejected successfully"
	if req.Action == ActionAccept {
		msg = "Request accepted successfully"
	}
	c.JSON(http.StatusOK, ReviewResponse{Message: msg, Status: status})
}

// ListForProject handles listing all requests of a project.
//
//	@Summary		List collaboration requests
//	@Description	List every request for a project you own
//	@Tags			Collaboration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	ListResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Failure		403	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id}/collaborate [get]
func (h *Handler) ListForProject(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	reqs, err := h.service.ListForProject(c.Request.Context(), projectID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	out := make([]*RequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = toRequestResponse(r)
	}
	c.JSON(http.StatusOK, ListResponse{Requests: out})
}

// ListPending handles the owner's pending inbox.
//
//	@Summary		Pending collaboration requests
//	@Description	List pending requests across all projects you own
//	@Tags			Collaboration
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	PendingResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Router			/collaborate/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	reqs, err := h.service.ListPending(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	out := make([]*PendingRequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = toPendingResponse(r)
	}
	c.JSON(http.StatusOK, PendingResponse{Count: len(out), Requests: out})
}

// ========== Helper Functions ==========

func parseID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

const invalidActionMessage = `Invalid action. Must be "accept" or "reject"`

var errorMappings = []response.ErrorMapping{
	{Err: ErrProjectNotFound, Status: http.StatusNotFound, Code: "project_not_found", Message: "Project not found"},
	{Err: ErrRequestNotFound, Status: http.StatusNotFound, Code: "request_not_found", Message: "Collaboration request not found"},
	{Err: ErrUserNotFound, Status: http.StatusNotFound, Code: "user_not_found", Message: "Requester account no longer exists"},
	{Err: ErrNotProjectOwner, Status: http.StatusForbidden, Code: "not_project_owner", Message: "Only project owner can review requests"},
	{Err: ErrOwnerOnlyListing, Status: http.StatusForbidden, Code: "not_project_owner", Message: "Only project owner can view collaboration requests"},
	{Err: ErrNotRequester, Status: http.StatusForbidden, Code: "not_requester", Message: "Only the requester can cancel this request"},
	{Err: ErrProjectNotOpen, Status: http.StatusBadRequest, Code: "project_not_open", Message: "Can only request to join in-progress projects"},
	{Err: ErrCannotJoinOwnProject, Status: http.StatusBadRequest, Code: "cannot_join_own_project", Message: "Cannot request to join your own project"},
	{Err: ErrAlreadyTeamMember, Status: http.StatusBadRequest, Code: "already_team_member", Message: "You are already a team member of this project"},
	{Err: ErrPendingRequestExists, Status: http.StatusBadRequest, Code: "pending_request_exists", Message: "You already have a pending request for this project"},
	{Err: ErrMessageTooShort, Status: http.StatusBadRequest, Code: "message_too_short", Message: "Message must be at least 20 characters"},
	{Err: ErrMessageTooLong, Status: http.StatusBadRequest, Code: "message_too_long", Message: "Message must be at most 1000 characters"},
	{Err: ErrSkillsRequired, Status: http.StatusBadRequest, Code: "skills_required", Message: "Message and at least one skill are required"},
	{Err: ErrTooManySkills, Status: http.StatusBadRequest, Code: "too_many_skills", Message: "You can specify at most 20 skills"},
	{Err: ErrSkillTooLong, Status: http.StatusBadRequest, Code: "skill_too_long", Message: "Each skill must be at most 100 characters long"},
	{Err: ErrInvalidAction, Status: http.StatusBadRequest, Code: "invalid_action", Message: invalidActionMessage},
	{Err: ErrAlreadyReviewed, Status: http.StatusBadRequest, Code: "already_reviewed", Message: "This request has already been reviewed"},
	{Err: ErrCannotCancel, Status: http.StatusBadRequest, Code: "cannot_cancel", Message: "Can only cancel pending requests"},
}

// handleError handles service errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, errorMappings)
}
