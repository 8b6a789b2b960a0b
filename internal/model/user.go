package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered student account.
type User struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string    `json:"name" gorm:"not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	IndexNumber        string    `json:"indexNumber,omitempty" gorm:"column:index_number"`
	RegistrationNumber string    `json:"registrationNumber,omitempty" gorm:"column:registration_number"`
	UniversityID       string    `json:"universityId,omitempty" gorm:"column:university_id"`
	EmailVerified      bool      `json:"emailVerified" gorm:"column:email_verified;default:false"`

	// Public profile
	Image    string `json:"image,omitempty"`
	Bio      string `json:"bio,omitempty"`
	GitHub   string `json:"github,omitempty" gorm:"column:github"`
	LinkedIn string `json:"linkedin,omitempty" gorm:"column:linkedin"`

	// CreatedAt also orders users for the early adopter ranking.
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}
