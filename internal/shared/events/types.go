package events

import "github.com/google/uuid"

// CollaboratorJoinedType is emitted when an accepted request grows a roster.
const CollaboratorJoinedType = "CollaboratorJoined"

// CollaboratorJoinedEvent records that a user was added to a project team.
// It lives here so the badge module can consume it without importing collaboration.
type CollaboratorJoinedEvent struct {
	BaseEvent

	ProjectID uuid.UUID `json:"project_id"`
	RequestID uuid.UUID `json:"request_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// NewCollaboratorJoinedEvent creates a CollaboratorJoinedEvent keyed by the request.
func NewCollaboratorJoinedEvent(requestID, projectID, userID uuid.UUID) *CollaboratorJoinedEvent {
	return &CollaboratorJoinedEvent{
		BaseEvent: NewBaseEvent(CollaboratorJoinedType, requestID),
		ProjectID: projectID,
		RequestID: requestID,
		UserID:    userID,
	}
}
