package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CollaborationStatus represents the status of a collaboration request.
type CollaborationStatus string

const (
	CollaborationStatusPending  CollaborationStatus = "pending"
	CollaborationStatusAccepted CollaborationStatus = "accepted"
	CollaborationStatusRejected CollaborationStatus = "rejected"
)

// IsTerminal reports whether no further review is possible.
func (s CollaborationStatus) IsTerminal() bool {
	return s == CollaborationStatusAccepted || s == CollaborationStatusRejected
}

// CollaborationRequest is a request from a user to join a project team.
// At most one pending request exists per (project, requester), enforced by
// the partial unique index created in database.Migrate.
type CollaborationRequest struct {
	ID           uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID    uuid.UUID           `json:"projectId" gorm:"type:uuid;not null;index"`
	RequesterID  uuid.UUID           `json:"requesterId" gorm:"type:uuid;not null;index"`
	Message      string              `json:"message" gorm:"type:text;not null"`
	Skills       pq.StringArray      `json:"skills" gorm:"type:text[];not null"`
	Status       CollaborationStatus `json:"status" gorm:"not null;default:pending;index"`
	ReviewedBy   *uuid.UUID          `json:"reviewedBy,omitempty" gorm:"type:uuid"`
	ReviewerNote *string             `json:"reviewerNote,omitempty" gorm:"type:text"`
	ReviewedAt   *time.Time          `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time           `json:"updatedAt"`

	// Relations (not loaded by default)
	Project   *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Requester *User    `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
}

// TableName returns the database table name.
func (CollaborationRequest) TableName() string {
	return "collaboration_requests"
}
