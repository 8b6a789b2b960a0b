package collaboration

import (
	"time"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
)

// Limits on request content.
const (
	MinMessageLength = 20
	MaxMessageLength = 1000
	MaxSkills        = 20
	MaxSkillLength   = 100
)

// CreateRequest is the body of a join request.
type CreateRequest struct {
	Message string   `json:"message"`
	Skills  []string `json:"skills"`
}

// ReviewRequest is the owner's decision on a request.
type ReviewRequest struct {
	Action Action `json:"action" binding:"required"`
	Note   string `json:"note"`
}

// CreateResponse is returned after a request is created.
type CreateResponse struct {
	Message   string    `json:"message"`
	RequestID uuid.UUID `json:"requestId"`
}

// ReviewResponse is returned after a review.
type ReviewResponse struct {
	Message string                    `json:"message"`
	Status  model.CollaborationStatus `json:"status"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// RequesterProfile is the requester as shown to a project owner.
type RequesterProfile struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Image    string    `json:"image,omitempty"`
	Bio      string    `json:"bio,omitempty"`
	GitHub   string    `json:"github,omitempty"`
	LinkedIn string    `json:"linkedin,omitempty"`
}

// RequestResponse represents a collaboration request in API responses.
type RequestResponse struct {
	ID           uuid.UUID                 `json:"id"`
	ProjectID    uuid.UUID                 `json:"projectId"`
	Status       model.CollaborationStatus `json:"status"`
	Message      string                    `json:"message"`
	Skills       []string                  `json:"skills"`
	ReviewedBy   *uuid.UUID                `json:"reviewedBy,omitempty"`
	ReviewerNote *string                   `json:"reviewerNote"`
	ReviewedAt   *time.Time                `json:"reviewedAt"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Requester    *RequesterProfile         `json:"requester,omitempty"`
}

// ListResponse wraps the requests of one project.
type ListResponse struct {
	Requests []*RequestResponse `json:"requests"`
}

// StatusResponse tells a user whether they asked to join a project.
type StatusResponse struct {
	HasRequest bool             `json:"hasRequest"`
	Request    *RequestResponse `json:"request"`
}

// PendingRequestResponse is an inbox entry for a project owner.
type PendingRequestResponse struct {
	ID           uuid.UUID         `json:"id"`
	ProjectID    uuid.UUID         `json:"projectId"`
	ProjectTitle string            `json:"projectTitle"`
	Message      string            `json:"message"`
	Skills       []string          `json:"skills"`
	CreatedAt    time.Time         `json:"createdAt"`
	Requester    *RequesterProfile `json:"requester,omitempty"`
}

// PendingResponse is the owner's inbox.
type PendingResponse struct {
	Count    int                       `json:"count"`
	Requests []*PendingRequestResponse `json:"requests"`
}

// toRequestResponse converts a stored request.
func toRequestResponse(r *model.CollaborationRequest) *RequestResponse {
	resp := &RequestResponse{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		Status:       r.Status,
		Message:      r.Message,
		Skills:       skillsOrEmpty(r.Skills),
		ReviewedBy:   r.ReviewedBy,
		ReviewerNote: r.ReviewerNote,
		ReviewedAt:   r.ReviewedAt,
		CreatedAt:    r.CreatedAt,
	}
	if r.Requester != nil {
		resp.Requester = toRequesterProfile(r.Requester, true)
	}
	return resp
}

// toPendingResponse converts a stored request for the inbox.
func toPendingResponse(r *model.CollaborationRequest) *PendingRequestResponse {
	resp := &PendingRequestResponse{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Message:   r.Message,
		Skills:    skillsOrEmpty(r.Skills),
		CreatedAt: r.CreatedAt,
	}
	if r.Project != nil {
		resp.ProjectTitle = r.Project.Title
	}
	if r.Requester != nil {
		resp.Requester = toRequesterProfile(r.Requester, false)
	}
	return resp
}

// toRequesterProfile exposes contact details only when full is set.
func toRequesterProfile(u *model.User, full bool) *RequesterProfile {
	p := &RequesterProfile{
		ID:    u.ID,
		Name:  u.Name,
		Image: u.Image,
	}
	if full {
		p.Email = u.Email
		p.Bio = u.Bio
		p.GitHub = u.GitHub
		p.LinkedIn = u.LinkedIn
	}
	return p
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
