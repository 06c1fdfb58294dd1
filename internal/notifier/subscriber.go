package notifier

import (
	"context"
	"errors"
	"fmt"

	"phonechecker/internal/events"
)

const bulkCompleteTitle = "Bulk Check Completed"

// Subscriber turns domain events into chat notifications.
type Subscriber struct {
	svc *Service
}

func NewSubscriber(svc *Service) *Subscriber {
	return &Subscriber{svc: svc}
}

// RegisterHandlers subscribes to the events that produce notifications.
func (s *Subscriber) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.BulkCheckCompleted{}.EventName(), s)
}

// Handle routes events to the appropriate send.
func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.BulkCheckCompleted:
		body := fmt.Sprintf("Your bulk phone number check has been completed successfully. %d numbers processed, %d valid.",
			e.TotalProcessed, e.ValidCount)
		result := s.svc.SendNotification(ctx, e.Handle, bulkCompleteTitle, body)
		if !result.Success {
			return errors.New(result.Error)
		}
		return nil
	default:
		return nil
	}
}

var _ events.Handler = (*Subscriber)(nil)
