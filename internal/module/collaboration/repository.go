package collaboration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/database"
	"gorm.io/gorm"
)

// Repository defines the interface for collaboration request data access.
type Repository interface {
	// Create inserts a pending request. A concurrent pending request for the
	// same pair yields database.AlreadyExists.
	Create(ctx context.Context, req *model.CollaborationRequest) (database.InsertResult, error)

	// GetByID returns the request if it belongs to projectID.
	GetByID(ctx context.Context, projectID, id uuid.UUID) (*model.CollaborationRequest, error)

	// HasPending reports whether requesterID has a pending request for projectID.
	HasPending(ctx context.Context, projectID, requesterID uuid.UUID) (bool, error)

	// FindLatest returns the newest request of any status, or nil.
	FindLatest(ctx context.Context, projectID, requesterID uuid.UUID) (*model.CollaborationRequest, error)

	// ListByProject returns all requests with requesters, newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.CollaborationRequest, error)

	// ListPendingByProjects returns pending requests with project and requester, newest first.
	ListPendingByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*model.CollaborationRequest, error)

	// TransitionFromPending applies t only while the stored status is pending.
	TransitionFromPending(ctx context.Context, t *Transition) (bool, error)

	// RevertToPending undoes an acceptance made by reviewerID at reviewedAt.
	RevertToPending(ctx context.Context, id, reviewerID uuid.UUID, reviewedAt time.Time) (bool, error)

	// DeletePending removes the request only while it is pending and owned by requesterID.
	DeletePending(ctx context.Context, id, requesterID uuid.UUID) (bool, error)
}

// Transition is a review decision applied by compare-and-swap.
type Transition struct {
	RequestID  uuid.UUID
	ProjectID  uuid.UUID
	To         model.CollaborationStatus
	ReviewedBy uuid.UUID
	Note       *string
	ReviewedAt time.Time
}

// ProjectStore is the project access collaboration needs.
type ProjectStore interface {
	// GetByID returns nil when the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	// AddTeamMember appends member unless its user is already on the roster.
	// Returns false when nothing was appended.
	AddTeamMember(ctx context.Context, projectID uuid.UUID, member model.TeamMember) (bool, error)
}

// UserStore is the user access collaboration needs.
type UserStore interface {
	// GetByID returns nil when the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new collaboration repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *model.CollaborationRequest) (database.InsertResult, error) {
	return database.ResultFromCreate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *repository) GetByID(ctx context.Context, projectID, id uuid.UUID) (*model.CollaborationRequest, error) {
	var req model.CollaborationRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) HasPending(ctx context.Context, projectID, requesterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CollaborationRequest{}).
		Where("project_id = ? AND requester_id = ? AND status = ?", projectID, requesterID, model.CollaborationStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindLatest(ctx context.Context, projectID, requesterID uuid.UUID) (*model.CollaborationRequest, error) {
	var req model.CollaborationRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND requester_id = ?", projectID, requesterID).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.CollaborationRequest, error) {
	var reqs []*model.CollaborationRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListPendingByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*model.CollaborationRequest, error) {
	if len(projectIDs) == 0 {
		return []*model.CollaborationRequest{}, nil
	}

	var reqs []*model.CollaborationRequest
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Requester").
		Where("project_id IN ? AND status = ?", projectIDs, model.CollaborationStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) TransitionFromPending(ctx context.Context, t *Transition) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.CollaborationRequest{}).
		Where("id = ? AND project_id = ? AND status = ?", t.RequestID, t.ProjectID, model.CollaborationStatusPending).
		Updates(map[string]any{
			"status":        t.To,
			"reviewed_by":   t.ReviewedBy,
			"reviewer_note": t.Note,
			"reviewed_at":   t.ReviewedAt,
			"updated_at":    t.ReviewedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) RevertToPending(ctx context.Context, id, reviewerID uuid.UUID, reviewedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.CollaborationRequest{}).
		Where("id = ? AND status = ? AND reviewed_by = ? AND reviewed_at = ?",
			id, model.CollaborationStatusAccepted, reviewerID, reviewedAt).
		Updates(map[string]any{
			"status":        model.CollaborationStatusPending,
			"reviewed_by":   nil,
			"reviewer_note": nil,
			"reviewed_at":   nil,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) DeletePending(ctx context.Context, id, requesterID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, model.CollaborationStatusPending).
		Delete(&model.CollaborationRequest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
