package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/metrics"
	"go.uber.org/zap"
)

// BadgeTrigger runs the badge rules fired by project activity.
type BadgeTrigger interface {
	CheckPopularProject(ctx context.Context, userID, projectID uuid.UUID, views int64) (bool, error)
	CheckFirstProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	CheckTeamPlayer(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ViewResult is a project after a counted view.
type ViewResult struct {
	Project *model.Project
	// OwnerBadge is set when this view earned the owner a badge.
	OwnerBadge *model.BadgeType
}

// Service provides project business logic.
type Service struct {
	repo    Repository
	badges  BadgeTrigger
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, badges BadgeTrigger, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		badges:  badges,
		metrics: m,
		logger:  logger,
	}
}

// View counts a view and returns the project.
// Badge failures are logged and never fail the view.
func (s *Service) View(ctx context.Context, id uuid.UUID) (*ViewResult, error) {
	project, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	s.metrics.RecordProjectView()

	result := &ViewResult{Project: project}

	awarded, err := s.badges.CheckPopularProject(ctx, project.UserID, project.ID, project.Views)
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("popular project check failed",
			zap.String("project_id", project.ID.String()),
			zap.Error(err),
		)
	} else if awarded {
		badge := model.BadgePopularProject
		result.OwnerBadge = &badge
	}

	return result, nil
}

// Publish turns a draft into a published project and returns the badges
// it earned the owner.
func (s *Service) Publish(ctx context.Context, id, callerID uuid.UUID) ([]model.BadgeType, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if !project.IsOwnedBy(callerID) {
		return nil, ErrNotProjectOwner
	}

	published, err := s.repo.Publish(ctx, id)
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, ErrAlreadyPublished
	}

	logger.WithContext(ctx, s.logger).Info("project published",
		zap.String("project_id", id.String()),
		zap.String("owner_id", callerID.String()),
	)

	var newBadges []model.BadgeType

	awarded, err := s.badges.CheckFirstProject(ctx, project.UserID, project.ID)
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("first project check failed",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
	} else if awarded {
		newBadges = append(newBadges, model.BadgeFirstProject)
	}

	for _, memberID := range project.TeamMembers.RegisteredUserIDs() {
		if _, err := s.badges.CheckTeamPlayer(ctx, memberID); err != nil {
			logger.WithContext(ctx, s.logger).Warn("team player check failed",
				zap.String("project_id", id.String()),
				zap.String("user_id", memberID.String()),
				zap.Error(err),
			)
		}
	}

	return newBadges, nil
}
