package project

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for project data access.
type Repository interface {
	Create(ctx context.Context, project *model.Project) error
	// GetByID returns nil when the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	// AddTeamMember appends member unless its user is already on the roster.
	AddTeamMember(ctx context.Context, projectID uuid.UUID, member model.TeamMember) (bool, error)
	// IncrementViews bumps the view counter and returns the updated row.
	IncrementViews(ctx context.Context, id uuid.UUID) (*model.Project, error)
	// Publish flips a draft to published. Returns false if it was not a draft.
	Publish(ctx context.Context, id uuid.UUID) (bool, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new project repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, project *model.Project) error {
	if project.TeamMembers == nil {
		project.TeamMembers = model.TeamMembers{}
	}
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *repository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("user_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) AddTeamMember(ctx context.Context, projectID uuid.UUID, member model.TeamMember) (bool, error) {
	if member.UserID == nil {
		return false, errors.New("team member has no user id")
	}

	entry, err := json.Marshal(model.TeamMembers{member})
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ? AND NOT team_members @> ?::jsonb", projectID, model.RosterProbe(*member.UserID)).
		Updates(map[string]any{
			"team_members": gorm.Expr("team_members || ?::jsonb", string(entry)),
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) IncrementViews(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	result := r.db.WithContext(ctx).
		Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &project, nil
}

func (r *repository) Publish(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ? AND is_draft = ?", id, true).
		Updates(map[string]any{
			"is_draft":   false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
