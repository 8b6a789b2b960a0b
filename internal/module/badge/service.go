package badge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/database"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/metrics"
	"go.uber.org/zap"
)

// Service evaluates badge rules and awards badges.
type Service struct {
	repo    Repository
	facts   Facts
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new badge service.
func NewService(repo Repository, facts Facts, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		facts:   facts,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Award grants badgeType to userID at most once.
// Returns false without error when the user already holds it.
func (s *Service) Award(ctx context.Context, userID uuid.UUID, badgeType model.BadgeType, metadata model.BadgeMetadata) (bool, error) {
	if !badgeType.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownBadge, badgeType)
	}

	exists, err := s.repo.Exists(ctx, userID, badgeType)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	result, err := s.repo.Insert(ctx, &model.UserBadge{
		ID:        uuid.New(),
		UserID:    userID,
		BadgeType: badgeType,
		AwardedAt: s.now().UTC(),
		Metadata:  metadata,
	})
	if err != nil {
		return false, err
	}
	if result == database.AlreadyExists {
		return false, nil
	}

	s.metrics.RecordBadgeAward(string(badgeType))
	logger.WithContext(ctx, s.logger).Info("badge awarded",
		zap.String("user_id", userID.String()),
		zap.String("badge_type", string(badgeType)),
	)
	return true, nil
}

// ========== Badge Rules ==========

// CheckFirstProject awards first-project when the user has exactly one published project.
func (s *Service) CheckFirstProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	count, err := s.facts.CountPublished(ctx, userID)
	if err != nil {
		return false, s.checkFailed(model.BadgeFirstProject, err)
	}
	if count != 1 {
		return false, nil
	}
	return s.award(ctx, userID, model.BadgeFirstProject, model.BadgeMetadata{"projectId": projectID.String()})
}

// CheckPopularProject awards popular-project once views reach the threshold.
func (s *Service) CheckPopularProject(ctx context.Context, userID, projectID uuid.UUID, views int64) (bool, error) {
	if views < PopularViewsThreshold {
		return false, nil
	}
	return s.award(ctx, userID, model.BadgePopularProject, model.BadgeMetadata{"projectId": projectID.String()})
}

// CheckLovedCreator awards loved-creator once likes across all projects reach the threshold.
func (s *Service) CheckLovedCreator(ctx context.Context, userID uuid.UUID) (bool, error) {
	total, err := s.facts.SumLikes(ctx, userID)
	if err != nil {
		return false, s.checkFailed(model.BadgeLovedCreator, err)
	}
	if total < LovedLikesThreshold {
		return false, nil
	}
	return s.award(ctx, userID, model.BadgeLovedCreator, model.BadgeMetadata{"totalLikes": total})
}

// CheckTeamPlayer awards team-player once the user is on enough published rosters.
func (s *Service) CheckTeamPlayer(ctx context.Context, userID uuid.UUID) (bool, error) {
	count, err := s.facts.CountContributions(ctx, userID)
	if err != nil {
		return false, s.checkFailed(model.BadgeTeamPlayer, err)
	}
	if count < TeamPlayerThreshold {
		return false, nil
	}
	return s.award(ctx, userID, model.BadgeTeamPlayer, model.BadgeMetadata{"contributionCount": count})
}

// CheckEarlyAdopter awards early-adopter to the first registered users.
func (s *Service) CheckEarlyAdopter(ctx context.Context, userID uuid.UUID) (bool, error) {
	rank, err := s.facts.UserRank(ctx, userID)
	if err != nil {
		return false, s.checkFailed(model.BadgeEarlyAdopter, err)
	}
	if rank == 0 || rank > EarlyAdopterLimit {
		return false, nil
	}
	return s.award(ctx, userID, model.BadgeEarlyAdopter, model.BadgeMetadata{"userNumber": rank})
}

// CheckAll evaluates every rule for userID and returns the newly awarded types.
// Every rule runs even if an earlier one fails; failures are joined.
func (s *Service) CheckAll(ctx context.Context, userID uuid.UUID) ([]model.BadgeType, error) {
	awarded := make([]model.BadgeType, 0, len(model.AllBadgeTypes))
	var errs []error

	collect := func(badgeType model.BadgeType, ok bool, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		if ok {
			awarded = append(awarded, badgeType)
		}
	}

	ok, err := s.CheckEarlyAdopter(ctx, userID)
	collect(model.BadgeEarlyAdopter, ok, err)

	projectID, found, err := s.facts.FirstPublishedID(ctx, userID)
	if err != nil {
		collect(model.BadgeFirstProject, false, s.checkFailed(model.BadgeFirstProject, err))
	} else if found {
		ok, err = s.CheckFirstProject(ctx, userID, projectID)
		collect(model.BadgeFirstProject, ok, err)
	}

	ok, err = s.CheckLovedCreator(ctx, userID)
	collect(model.BadgeLovedCreator, ok, err)

	ok, err = s.CheckTeamPlayer(ctx, userID)
	collect(model.BadgeTeamPlayer, ok, err)

	popular, err := s.facts.FirstPopularProject(ctx, userID, PopularViewsThreshold)
	if err != nil {
		collect(model.BadgePopularProject, false, s.checkFailed(model.BadgePopularProject, err))
	} else if popular != nil {
		ok, err = s.CheckPopularProject(ctx, userID, popular.ID, popular.Views)
		collect(model.BadgePopularProject, ok, err)
	}

	return awarded, errors.Join(errs...)
}

// ListByUser returns a user's badges, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ========== Helper Functions ==========

func (s *Service) award(ctx context.Context, userID uuid.UUID, badgeType model.BadgeType, metadata model.BadgeMetadata) (bool, error) {
	ok, err := s.Award(ctx, userID, badgeType, metadata)
	if err != nil {
		return false, s.checkFailed(badgeType, err)
	}
	return ok, nil
}

func (s *Service) checkFailed(badgeType model.BadgeType, err error) error {
	s.metrics.RecordBadgeCheckError(string(badgeType))
	return fmt.Errorf("check %s: %w", badgeType, err)
}
