// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"phonechecker/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Publisher   = events.Publisher
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Validation Domain Events
// =============================================================================

// BulkCheckCompleted is published when a bulk check finished and the caller
// asked to be told on a messaging handle.
type BulkCheckCompleted struct {
	BaseEvent
	Handle         string `json:"handle"`
	TotalProcessed int    `json:"totalProcessed"`
	ValidCount     int    `json:"validCount"`
}

func (e BulkCheckCompleted) EventName() string { return "validation.bulk_check.completed" }
