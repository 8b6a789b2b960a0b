package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeType identifies one of the fixed achievement badges.
type BadgeType string

const (
	BadgeFirstProject   BadgeType = "first-project"
	BadgePopularProject BadgeType = "popular-project"
	BadgeLovedCreator   BadgeType = "loved-creator"
	BadgeTeamPlayer     BadgeType = "team-player"
	BadgeEarlyAdopter   BadgeType = "early-adopter"
)

// AllBadgeTypes lists every badge type in catalog order.
var AllBadgeTypes = []BadgeType{
	BadgeFirstProject,
	BadgePopularProject,
	BadgeLovedCreator,
	BadgeTeamPlayer,
	BadgeEarlyAdopter,
}

// IsValid checks if the type is part of the catalog.
func (t BadgeType) IsValid() bool {
	switch t {
	case BadgeFirstProject, BadgePopularProject, BadgeLovedCreator, BadgeTeamPlayer, BadgeEarlyAdopter:
		return true
	default:
		return false
	}
}

// BadgeMetadata is the snapshot captured when a badge is awarded.
type BadgeMetadata map[string]any

// UserBadge is a badge awarded to a user. Rows are never updated or deleted.
type UserBadge struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_badges_user_type"`
	BadgeType BadgeType     `json:"badgeType" gorm:"not null;uniqueIndex:idx_user_badges_user_type"`
	AwardedAt time.Time     `json:"awardedAt" gorm:"not null"`
	Metadata  BadgeMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`
}

// TableName returns the database table name.
func (UserBadge) TableName() string {
	return "user_badges"
}
