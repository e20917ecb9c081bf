package ports

import (
	"context"

	"dispatch/internal/core/domain/events"
)

// EventPublisher delivers domain events to a collaborator: the driver and customer
// notification channels, a message broker or the journal.
//
// The core calls Publish after its locks are released. A returned error is logged;
// it never rolls back the state change the event describes.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
