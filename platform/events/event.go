// Package events is the in-process event bus modules use to react to each
// other without importing each other.
package events

import (
	"context"
	"time"
)

// Event is anything published on the bus.
type Event interface {
	// EventName is the subscription key, e.g. "validation.bulk_check.completed".
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events to carry the publish time.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Publisher is what producers depend on; they never see subscriptions.
type Publisher interface {
	// Publish hands the event to every subscribed handler without waiting.
	Publish(ctx context.Context, event Event)
}

type Bus interface {
	Publisher

	// PublishSync runs every handler before returning and reports their errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers handler for events whose EventName equals eventName.
	Subscribe(eventName string, handler Handler)
}
