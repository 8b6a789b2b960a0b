package collaboration

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/database"
	"github.com/unishowcase/server/internal/shared/events"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/metrics"
	"go.uber.org/zap"
)

// Outcome labels for the collaboration requests counter.
const (
	outcomeCreated   = "created"
	outcomeAccepted  = "accepted"
	outcomeRejected  = "rejected"
	outcomeCancelled = "cancelled"
)

// Service provides collaboration business logic.
type Service struct {
	repo         Repository
	projects     ProjectStore
	users        UserStore
	publisher    events.Publisher
	stateMachine *StateMachine
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewService creates a new collaboration service.
func NewService(
	repo Repository,
	projects ProjectStore,
	users UserStore,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:         repo,
		projects:     projects,
		users:        users,
		publisher:    publisher,
		stateMachine: NewStateMachine(),
		metrics:      m,
		logger:       logger,
	}
}

// ========== Requester Operations ==========

// Create files a join request for projectID on behalf of requesterID.
func (s *Service) Create(ctx context.Context, projectID, requesterID uuid.UUID, req *CreateRequest) (uuid.UUID, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return uuid.Nil, err
	}
	if project == nil {
		return uuid.Nil, ErrProjectNotFound
	}
	if !project.AcceptsCollaborators() {
		return uuid.Nil, ErrProjectNotOpen
	}
	if project.IsOwnedBy(requesterID) {
		return uuid.Nil, ErrCannotJoinOwnProject
	}
	if project.TeamMembers.Contains(requesterID) {
		return uuid.Nil, ErrAlreadyTeamMember
	}

	pending, err := s.repo.HasPending(ctx, projectID, requesterID)
	if err != nil {
		return uuid.Nil, err
	}
	if pending {
		return uuid.Nil, ErrPendingRequestExists
	}

	message, err := normalizeMessage(req.Message)
	if err != nil {
		return uuid.Nil, err
	}
	skills, err := normalizeSkills(req.Skills)
	if err != nil {
		return uuid.Nil, err
	}

	record := &model.CollaborationRequest{
		ID:          uuid.New(),
		ProjectID:   projectID,
		RequesterID: requesterID,
		Message:     message,
		Skills:      skills,
		Status:      model.CollaborationStatusPending,
	}

	result, err := s.repo.Create(ctx, record)
	if err != nil {
		return uuid.Nil, err
	}
	if result == database.AlreadyExists {
		s.metrics.RecordCASConflict("create")
		return uuid.Nil, ErrPendingRequestExists
	}

	s.metrics.RecordCollaboration(outcomeCreated)
	logger.WithContext(ctx, s.logger).Info("collaboration request created",
		zap.String("request_id", record.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("requester_id", requesterID.String()),
	)

	return record.ID, nil
}

// Cancel withdraws a pending request. Only its requester may cancel it.
func (s *Service) Cancel(ctx context.Context, projectID, requestID, requesterID uuid.UUID) error {
	req, err := s.repo.GetByID(ctx, projectID, requestID)
	if err != nil {
		return err
	}
	if req.RequesterID != requesterID {
		return ErrNotRequester
	}
	if req.Status.IsTerminal() {
		return ErrCannotCancel
	}

	deleted, err := s.repo.DeletePending(ctx, requestID, requesterID)
	if err != nil {
		return err
	}
	if !deleted {
		s.metrics.RecordCASConflict("cancel")
		return ErrCannotCancel
	}

	s.metrics.RecordCollaboration(outcomeCancelled)
	logger.WithContext(ctx, s.logger).Info("collaboration request cancelled",
		zap.String("request_id", requestID.String()),
		zap.String("project_id", projectID.String()),
	)

	return nil
}

// Status returns the caller's most recent request for the project, or nil.
func (s *Service) Status(ctx context.Context, projectID, callerID uuid.UUID) (*model.CollaborationRequest, error) {
	return s.repo.FindLatest(ctx, projectID, callerID)
}

// ========== Owner Operations ==========

// Review accepts or rejects a pending request.
func (s *Service) Review(ctx context.Context, projectID, requestID, reviewerID uuid.UUID, req *ReviewRequest) (model.CollaborationStatus, error) {
	target, err := req.Action.TargetStatus()
	if err != nil {
		return "", err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", ErrProjectNotFound
	}
	if !project.IsOwnedBy(reviewerID) {
		return "", ErrNotProjectOwner
	}

	current, err := s.repo.GetByID(ctx, projectID, requestID)
	if err != nil {
		return "", err
	}
	if err := s.stateMachine.Validate(current.Status, target); err != nil {
		return "", err
	}

	// Postgres keeps microseconds; the rollback guard compares this value.
	reviewedAt := time.Now().UTC().Truncate(time.Microsecond)

	var note *string
	if trimmed := strings.TrimSpace(req.Note); trimmed != "" {
		note = &trimmed
	}

	swapped, err := s.repo.TransitionFromPending(ctx, &Transition{
		RequestID:  requestID,
		ProjectID:  projectID,
		To:         target,
		ReviewedBy: reviewerID,
		Note:       note,
		ReviewedAt: reviewedAt,
	})
	if err != nil {
		return "", err
	}
	if !swapped {
		s.metrics.RecordCASConflict("review")
		return "", ErrAlreadyReviewed
	}

	if target == model.CollaborationStatusAccepted {
		if err := s.admit(ctx, current, reviewerID, reviewedAt); err != nil {
			return "", err
		}
		s.metrics.RecordCollaboration(outcomeAccepted)
	} else {
		s.metrics.RecordCollaboration(outcomeRejected)
	}

	logger.WithContext(ctx, s.logger).Info("collaboration request reviewed",
		zap.String("request_id", requestID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("status", string(target)),
	)

	return target, nil
}

// admit adds the requester to the roster after a successful accept.
// Any failure reverts the request to pending.
func (s *Service) admit(ctx context.Context, req *model.CollaborationRequest, reviewerID uuid.UUID, reviewedAt time.Time) error {
	requester, err := s.users.GetByID(ctx, req.RequesterID)
	if err != nil {
		s.rollback(ctx, req.ID, reviewerID, reviewedAt)
		return err
	}
	if requester == nil {
		s.rollback(ctx, req.ID, reviewerID, reviewedAt)
		return ErrUserNotFound
	}

	userID := requester.ID
	member := model.TeamMember{
		Name:        requester.Name,
		Email:       requester.Email,
		Role:        model.CollaboratorRole,
		IndexNumber: requester.IndexNumber,
		UserID:      &userID,
	}

	added, err := s.projects.AddTeamMember(ctx, req.ProjectID, member)
	if err != nil {
		s.rollback(ctx, req.ID, reviewerID, reviewedAt)
		return err
	}

	if !added {
		// Either the user is already listed or the project is gone.
		project, err := s.projects.GetByID(ctx, req.ProjectID)
		if err != nil {
			s.rollback(ctx, req.ID, reviewerID, reviewedAt)
			return err
		}
		if project == nil {
			s.rollback(ctx, req.ID, reviewerID, reviewedAt)
			return ErrProjectNotFound
		}
		return nil
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, events.NewCollaboratorJoinedEvent(req.ID, req.ProjectID, userID))
	}
	return nil
}

// rollback reverts an acceptance made by this call. Failures are logged.
func (s *Service) rollback(ctx context.Context, requestID, reviewerID uuid.UUID, reviewedAt time.Time) {
	s.metrics.RecordRollback()

	reverted, err := s.repo.RevertToPending(ctx, requestID, reviewerID, reviewedAt)
	if err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to revert collaboration request",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
		return
	}
	if !reverted {
		logger.WithContext(ctx, s.logger).Warn("collaboration request changed before revert",
			zap.String("request_id", requestID.String()),
		)
	}
}

// ListForProject returns every request for a project. Owner only.
func (s *Service) ListForProject(ctx context.Context, projectID, callerID uuid.UUID) ([]*model.CollaborationRequest, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if !project.IsOwnedBy(callerID) {
		return nil, ErrOwnerOnlyListing
	}
	return s.repo.ListByProject(ctx, projectID)
}

// ListPending returns pending requests across all projects owned by ownerID.
func (s *Service) ListPending(ctx context.Context, ownerID uuid.UUID) ([]*model.CollaborationRequest, error) {
	projectIDs, err := s.projects.ListIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPendingByProjects(ctx, projectIDs)
}

// ========== Helper Functions ==========

// normalizeMessage trims the message and checks its length in characters.
func normalizeMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	n := utf8.RuneCountInString(message)
	if n < MinMessageLength {
		return "", ErrMessageTooShort
	}
	if n > MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return message, nil
}

// normalizeSkills trims entries, drops blanks and enforces the limits.
func normalizeSkills(skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}

	if len(out) == 0 {
		return nil, ErrSkillsRequired
	}
	if len(out) > MaxSkills {
		return nil, ErrTooManySkills
	}
	for _, skill := range out {
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return nil, ErrSkillTooLong
		}
	}
	return out, nil
}
