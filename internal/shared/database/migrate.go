package database

import (
	"fmt"

	"github.com/unishowcase/server/internal/model"
	"gorm.io/gorm"
)

// pendingRequestIndex enforces one pending request per (project, requester).
const pendingRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_collaboration_requests_pending_pair
	ON collaboration_requests (project_id, requester_id)
	WHERE status = 'pending'`

// teamMembersIndex serves roster containment lookups.
const teamMembersIndex = `CREATE INDEX IF NOT EXISTS idx_projects_team_members
	ON projects USING GIN (team_members jsonb_path_ops)`

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.CollaborationRequest{},
		&model.UserBadge{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range []string{pendingRequestIndex, teamMembersIndex} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
