package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the progress of a project.
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusArchived   ProjectStatus = "archived"
)

// CollaboratorRole is the role given to members added through an accepted request.
const CollaboratorRole = "Collaborator"

// TeamMember is one entry of a project roster.
// Only members with a UserID are linked to a registered account.
type TeamMember struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IndexNumber string     `json:"indexNumber,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
}

// TeamMembers is the ordered roster stored as a jsonb array.
type TeamMembers []TeamMember

// Contains reports whether the roster has a member linked to userID.
func (m TeamMembers) Contains(userID uuid.UUID) bool {
	for _, member := range m {
		if member.UserID != nil && *member.UserID == userID {
			return true
		}
	}
	return false
}

// RegisteredUserIDs returns the distinct linked user IDs in roster order.
func (m TeamMembers) RegisteredUserIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(m))
	ids := make([]uuid.UUID, 0, len(m))
	for _, member := range m {
		if member.UserID == nil || *member.UserID == uuid.Nil {
			continue
		}
		if _, ok := seen[*member.UserID]; ok {
			continue
		}
		seen[*member.UserID] = struct{}{}
		ids = append(ids, *member.UserID)
	}
	return ids
}

// RosterProbe returns the jsonb containment operand that matches a roster
// entry linked to userID.
func RosterProbe(userID uuid.UUID) string {
	return fmt.Sprintf(`[{"userId":%q}]`, userID.String())
}

// Project represents a showcased university project.
type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID     `json:"userId" gorm:"type:uuid;not null;index"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status" gorm:"not null;default:in-progress"`
	IsDraft     bool          `json:"isDraft" gorm:"column:is_draft;not null;default:true"`
	Views       int64         `json:"views" gorm:"not null;default:0"`
	Likes       *int64        `json:"likes,omitempty"`
	TeamMembers TeamMembers   `json:"teamMembers" gorm:"column:team_members;type:jsonb;serializer:json;not null;default:'[]'"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}

// IsOwnedBy reports whether userID owns the project.
func (p *Project) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// AcceptsCollaborators reports whether join requests may be sent.
func (p *Project) AcceptsCollaborators() bool {
	return p.Status == ProjectStatusInProgress
}
