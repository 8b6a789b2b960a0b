package badge

import "github.com/unishowcase/server/internal/model"

// Award thresholds.
const (
	PopularViewsThreshold = 100
	LovedLikesThreshold   = 10
	TeamPlayerThreshold   = 5
	EarlyAdopterLimit     = 100
)

// Definition describes how a badge is displayed and earned.
type Definition struct {
	Type        model.BadgeType `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
	Criteria    string          `json:"criteria"`
}

var definitions = map[model.BadgeType]Definition{
	model.BadgeFirstProject: {
		Type:        model.BadgeFirstProject,
		Name:        "Pioneer",
		Description: "Uploaded your first project",
		Icon:        "Rocket",
		Color:       "blue",
		Criteria:    "Upload your first project to the platform",
	},
	model.BadgePopularProject: {
		Type:        model.BadgePopularProject,
		Name:        "Trending",
		Description: "One of your projects reached 100+ views",
		Icon:        "TrendingUp",
		Color:       "gold",
		Criteria:    "Get 100+ views on any project",
	},
	model.BadgeLovedCreator: {
		Type:        model.BadgeLovedCreator,
		Name:        "Beloved",
		Description: "Received 10+ likes across all projects",
		Icon:        "Heart",
		Color:       "rose",
		Criteria:    "Receive 10+ total likes on your projects",
	},
	model.BadgeTeamPlayer: {
		Type:        model.BadgeTeamPlayer,
		Name:        "Team Player",
		Description: "Contributed to 5 different projects",
		Icon:        "Users",
		Color:       "green",
		Criteria:    "Be listed as a team member on 5 different projects",
	},
	model.BadgeEarlyAdopter: {
		Type:        model.BadgeEarlyAdopter,
		Name:        "Early Adopter",
		Description: "One of the first 100 users on the platform",
		Icon:        "Star",
		Color:       "purple",
		Criteria:    "Be among the first 100 registered users",
	},
}

// GetDefinition returns the catalog entry for t.
func GetDefinition(t model.BadgeType) (Definition, bool) {
	def, ok := definitions[t]
	return def, ok
}

// Definitions returns the whole catalog in display order.
func Definitions() []Definition {
	out := make([]Definition, 0, len(model.AllBadgeTypes))
	for _, t := range model.AllBadgeTypes {
		out = append(out, definitions[t])
	}
	return out
}
