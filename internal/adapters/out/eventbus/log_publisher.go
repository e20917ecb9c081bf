package eventbus

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/events"
)

// LogPublisher writes every event to a structured log. It stands in for the
// notification channels when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "notifications")}
}

func (p *LogPublisher) Publish(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.BatchAssigned:
		codes := make([]string, len(e.Stops))
		for i, s := range e.Stops {
			codes[i] = s.OrderRef + ":" + s.ConfirmationCode
		}
		p.logger.InfoContext(ctx, "batch assigned",
			"batch", e.BatchRef,
			"zone", e.Zone.String(),
			"driver", e.DriverRef,
			"contact", e.DriverContact,
			"stops", codes)
	case events.OrderStatusChanged:
		p.logger.InfoContext(ctx, "order status changed",
			"order", e.OrderRef,
			"customer_id", e.CustomerID,
			"from", e.Previous.String(),
			"to", e.Status.String())
	default:
		p.logger.DebugContext(ctx, "event", "name", event.Name())
	}
	return nil
}
