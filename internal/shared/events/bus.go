package events

import (
	"context"
	"sync"

	"github.com/unishowcase/server/internal/shared/logger"
	"go.uber.org/zap"
)

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Bus dispatches events synchronously, in the caller's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewBus creates a new event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register registers a handler for the events it handles.
func (b *Bus) Register(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range handler.Handles() {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
		b.logger.Debug("registered event handler", zap.String("event_type", eventType))
	}
}

// Publish calls every handler for the event in registration order.
// A failing handler is logged and does not stop the others.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.EventType()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers registered for event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
		return
	}

	b.logger.Debug("publishing event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Int("handler_count", len(handlers)),
	)

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			logger.WithContext(ctx, b.logger).Error("event handler failed",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

var _ Publisher = (*Bus)(nil)
