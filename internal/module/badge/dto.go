package badge

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
)

// BadgeResponse is an awarded badge merged with its catalog entry.
type BadgeResponse struct {
	ID         uuid.UUID           `json:"id"`
	BadgeType  model.BadgeType     `json:"badgeType"`
	AwardedAt  time.Time           `json:"awardedAt"`
	Metadata   model.BadgeMetadata `json:"metadata,omitempty"`
	Definition *Definition         `json:"definition"`
}

// ListResponse wraps a user's badges.
type ListResponse struct {
	Badges []*BadgeResponse `json:"badges"`
}

// DefinitionsResponse wraps the badge catalog.
type DefinitionsResponse struct {
	Definitions []Definition `json:"definitions"`
}

// CheckResponse reports the outcome of a batch check.
type CheckResponse struct {
	NewBadges []model.BadgeType `json:"newBadges"`
	Message   string            `json:"message"`
}

// ToBadgeResponse converts a stored badge.
func ToBadgeResponse(b *model.UserBadge) *BadgeResponse {
	resp := &BadgeResponse{
		ID:        b.ID,
		BadgeType: b.BadgeType,
		AwardedAt: b.AwardedAt,
		Metadata:  b.Metadata,
	}
	if def, ok := GetDefinition(b.BadgeType); ok {
		resp.Definition = &def
	}
	return resp
}

func newCheckResponse(awarded []model.BadgeType) CheckResponse {
	if len(awarded) == 0 {
		return CheckResponse{NewBadges: []model.BadgeType{}, Message: "No new badges earned"}
	}
	return CheckResponse{
		NewBadges: awarded,
		Message:   fmt.Sprintf("Awarded %d new badge(s)", len(awarded)),
	}
}
