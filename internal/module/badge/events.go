package badge

import (
	"context"

	"github.com/unishowcase/server/internal/shared/events"
	"github.com/unishowcase/server/internal/shared/logger"
	"go.uber.org/zap"
)

// NewEventHandler returns the bus handler that re-checks team-player
// whenever a user joins a roster.
func NewEventHandler(service *Service, log *zap.Logger) events.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return events.On(events.CollaboratorJoinedType, func(ctx context.Context, joined *events.CollaboratorJoinedEvent) error {
		awarded, err := service.CheckTeamPlayer(ctx, joined.UserID)
		if err != nil {
			return err
		}
		if awarded {
			logger.WithContext(ctx, log).Info("team player badge earned on join",
				zap.String("member_id", joined.UserID.String()),
				zap.String("project_id", joined.ProjectID.String()),
			)
		}
		return nil
	})
}
