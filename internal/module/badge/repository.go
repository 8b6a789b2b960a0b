package badge

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for awarded badge storage.
type Repository interface {
	Exists(ctx context.Context, userID uuid.UUID, badgeType model.BadgeType) (bool, error)
	// Insert stores a badge unless the user already holds that type.
	Insert(ctx context.Context, badge *model.UserBadge) (database.InsertResult, error)
	// ListByUser returns badges newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, error)
}

// Facts answers the aggregate questions badge rules ask.
type Facts interface {
	CountPublished(ctx context.Context, userID uuid.UUID) (int64, error)
	FirstPublishedID(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	SumLikes(ctx context.Context, userID uuid.UUID) (int64, error)
	// CountContributions counts published projects listing userID on the roster.
	CountContributions(ctx context.Context, userID uuid.UUID) (int64, error)
	// UserRank is the 1-based registration rank, ties counted inclusively.
	// Zero means the user does not exist.
	UserRank(ctx context.Context, userID uuid.UUID) (int64, error)
	// FirstPopularProject returns a project with at least minViews views, or nil.
	FirstPopularProject(ctx context.Context, userID uuid.UUID, minViews int64) (*model.Project, error)
}

// ========== Badge Repository ==========

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new badge repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Exists(ctx context.Context, userID uuid.UUID, badgeType model.BadgeType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_type = ?", userID, badgeType).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Insert(ctx context.Context, badge *model.UserBadge) (database.InsertResult, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_type"}},
			DoNothing: true,
		}).
		Create(badge)
	if result.Error != nil {
		return database.ResultFromCreate(result.Error)
	}
	return database.ResultFromRowsAffected(result.RowsAffected), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, error) {
	var badges []*model.UserBadge
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&badges).Error
	return badges, err
}

// ========== Facts ==========

type facts struct {
	db *gorm.DB
}

// NewFacts creates a Facts backed by the projects and users tables.
func NewFacts(db *gorm.DB) Facts {
	return &facts{db: db}
}

func (f *facts) CountPublished(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("user_id = ? AND is_draft = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (f *facts) FirstPublishedID(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	var project model.Project
	err := f.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND is_draft = ?", userID, false).
		Order("created_at ASC").
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return project.ID, true, nil
}

func (f *facts) SumLikes(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := f.db.WithContext(ctx).
		Model(&model.Project{}).
		Select("COALESCE(SUM(COALESCE(likes, 0)), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (f *facts) CountContributions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("is_draft = ? AND team_members @> ?::jsonb", false, model.RosterProbe(userID)).
		Count(&count).Error
	return count, err
}

func (f *facts) UserRank(ctx context.Context, userID uuid.UUID) (int64, error) {
	joined := f.db.Model(&model.User{}).Select("created_at").Where("id = ?", userID)

	var rank int64
	err := f.db.WithContext(ctx).
		Model(&model.User{}).
		Where("created_at <= (?)", joined).
		Count(&rank).Error
	return rank, err
}

func (f *facts) FirstPopularProject(ctx context.Context, userID uuid.UUID, minViews int64) (*model.Project, error) {
	var project model.Project
	err := f.db.WithContext(ctx).
		Select("id", "views").
		Where("user_id = ? AND views >= ?", userID, minViews).
		Order("created_at ASC").
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}
