package events

import (
	"context"
	"fmt"
)

// Handler processes events of the types it declares.
type Handler interface {
	Handles() []string
	// Handle must tolerate seeing the same event more than once.
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function into a Handler.
type HandlerFunc struct {
	eventTypes []string
	fn         func(context.Context, Event) error
}

// NewHandlerFunc creates a new HandlerFunc.
func NewHandlerFunc(eventTypes []string, fn func(context.Context, Event) error) *HandlerFunc {
	return &HandlerFunc{
		eventTypes: eventTypes,
		fn:         fn,
	}
}

// Handles returns the event types this handler processes.
func (h *HandlerFunc) Handles() []string {
	return h.eventTypes
}

// Handle processes the given event.
func (h *HandlerFunc) Handle(ctx context.Context, event Event) error {
	return h.fn(ctx, event)
}

// On returns a Handler for a single event type whose payload is E.
// An event of the right type name but another Go type is an error.
func On[E Event](eventType string, fn func(context.Context, E) error) Handler {
	return NewHandlerFunc([]string{eventType}, func(ctx context.Context, event Event) error {
		typed, ok := event.(E)
		if !ok {
			return fmt.Errorf("event %s: unexpected payload %T", eventType, event)
		}
		return fn(ctx, typed)
	})
}
