package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBus_Publish(t *testing.T) {
	t.Run("dispatches to handlers in registration order", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var calls []string

		bus.Register(NewHandlerFunc([]string{CollaboratorJoinedType}, func(ctx context.Context, e Event) error {
			calls = append(calls, "first")
			return nil
		}))
		bus.Register(NewHandlerFunc([]string{CollaboratorJoinedType}, func(ctx context.Context, e Event) error {
			calls = append(calls, "second")
			return nil
		}))

		bus.Publish(context.Background(), NewCollaboratorJoinedEvent(uuid.New(), uuid.New(), uuid.New()))

		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("continues after a failing handler", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		reached := false

		bus.Register(NewHandlerFunc([]string{CollaboratorJoinedType}, func(ctx context.Context, e Event) error {
			return errors.New("boom")
		}))
		bus.Register(NewHandlerFunc([]string{CollaboratorJoinedType}, func(ctx context.Context, e Event) error {
			reached = true
			return nil
		}))

		bus.Publish(context.Background(), NewCollaboratorJoinedEvent(uuid.New(), uuid.New(), uuid.New()))

		assert.True(t, reached)
	})

	t.Run("ignores events without handlers", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		assert.NotPanics(t, func() {
			bus.Publish(context.Background(), NewCollaboratorJoinedEvent(uuid.New(), uuid.New(), uuid.New()))
		})
	})
}

func TestOn(t *testing.T) {
	t.Run("passes the typed event", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var got *CollaboratorJoinedEvent

		bus.Register(On(CollaboratorJoinedType, func(ctx context.Context, e *CollaboratorJoinedEvent) error {
			got = e
			return nil
		}))

		event := NewCollaboratorJoinedEvent(uuid.New(), uuid.New(), uuid.New())
		bus.Publish(context.Background(), event)

		assert.Same(t, event, got)
	})

	t.Run("rejects a mismatched payload", func(t *testing.T) {
		h := On(CollaboratorJoinedType, func(ctx context.Context, e *CollaboratorJoinedEvent) error {
			return nil
		})

		err := h.Handle(context.Background(), NewBaseEvent(CollaboratorJoinedType, uuid.New()))

		assert.ErrorContains(t, err, "unexpected payload")
		assert.Equal(t, []string{CollaboratorJoinedType}, h.Handles())
	})
}

func TestNewCollaboratorJoinedEvent(t *testing.T) {
	requestID, projectID, userID := uuid.New(), uuid.New(), uuid.New()

	event := NewCollaboratorJoinedEvent(requestID, projectID, userID)

	assert.Equal(t, CollaboratorJoinedType, event.EventType())
	assert.Equal(t, requestID, event.AggregateID())
	assert.Equal(t, projectID, event.ProjectID)
	assert.Equal(t, userID, event.UserID)
	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.False(t, event.OccurredAt().IsZero())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
}
