package commands

import (
	"context"

	"dispatch/internal/core/domain/model/batch"
)

// ReserveBatchCommandHandler pulls the dispatch queue head into a busy driver's
// pending list.
type ReserveBatchCommandHandler struct {
	reserver BatchReserver
}

func NewReserveBatchCommandHandler(reserver BatchReserver) ReserveBatchCommandHandler {
	return ReserveBatchCommandHandler{reserver: reserver}
}

// Handle returns the reserved batch, or nil when nothing is queued.
func (h ReserveBatchCommandHandler) Handle(ctx context.Context, cmd ReserveBatchCommand) (*batch.Batch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.reserver.ReserveNextBatch(ctx, cmd.DriverID())
}
