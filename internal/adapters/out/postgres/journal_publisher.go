package postgres

import (
	"context"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// JournalPublisher is an EventPublisher that writes events to the journal, one
// transaction per event. Events it has no table for are ignored.
type JournalPublisher struct {
	factory ports.UnitOfWorkFactory
}

// NewJournalPublisher creates a publisher writing through factory.
func NewJournalPublisher(factory ports.UnitOfWorkFactory) *JournalPublisher {
	return &JournalPublisher{factory: factory}
}

// Publish journals event.
func (p *JournalPublisher) Publish(ctx context.Context, event events.Event) error {
	var write func(repo ports.JournalRepository) error
	switch e := event.(type) {
	case events.OrderStatusChanged:
		write = func(repo ports.JournalRepository) error { return repo.RecordOrderStatus(ctx, e) }
	case events.BatchAssigned:
		write = func(repo ports.JournalRepository) error { return repo.RecordBatchAssignment(ctx, e) }
	default:
		return nil
	}

	uow := p.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := write(uow.JournalRepository()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

