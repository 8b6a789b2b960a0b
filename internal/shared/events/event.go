package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the interface that all domain events implement.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	// AggregateID returns the ID of the entity that produced the event.
	AggregateID() uuid.UUID
}

// BaseEvent provides the common Event fields.
// Embed it in concrete events.
type BaseEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateUUID uuid.UUID `json:"aggregate_id"`
}

// EventID returns the unique identifier for this event instance.
func (e BaseEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type name of the event.
func (e BaseEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the entity that produced the event.
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.AggregateUUID
}

// NewBaseEvent creates a new BaseEvent stamped in UTC.
func NewBaseEvent(eventType string, aggregateID uuid.UUID) BaseEvent {
	return BaseEvent{
		ID:            uuid.New(),
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		AggregateUUID: aggregateID,
	}
}
