package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// StatusRecord is one journaled status change of an order.
type StatusRecord struct {
	OrderID   kernel.UUID
	Previous  order.Status
	Status    order.Status
	ChangedAt time.Time
}

// JournalRepository persists a checkpoint of dispatch activity. The in-memory core
// stays authoritative; the journal is written after the fact for audit and recovery
// tooling.
type JournalRepository interface {
	// RecordOrderStatus upserts the order's latest status and appends the change to its history.
	RecordOrderStatus(ctx context.Context, event events.OrderStatusChanged) error

	// RecordBatchAssignment upserts the batch with its driver and its ordered stops.
	RecordBatchAssignment(ctx context.Context, event events.BatchAssigned) error

	// OrderHistory returns the recorded changes of one order, oldest first.
	OrderHistory(ctx context.Context, orderID kernel.UUID) ([]StatusRecord, error)
}
