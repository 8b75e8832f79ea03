package shared

import (
	"context"
	"time"
)

// DomainEvent represents an event that has occurred in the domain
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// EventDispatcher dispatches domain events to handlers
type EventDispatcher interface {
	Dispatch(ctx context.Context, event DomainEvent) error
	Register(eventName string, handler EventHandler)
}

// EventHandler handles domain events
type EventHandler func(ctx context.Context, event DomainEvent) error

// EventRecorder collects events raised while a use case runs so they can be
// dispatched after the surrounding transaction commits.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// Drain returns and clears the recorded events
func (r *EventRecorder) Drain() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
