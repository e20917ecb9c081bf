package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// CompleteBatchCommandHandler closes a driver's current batch. The returned driver is
// Busy again if a reserved or queued batch was waiting, Available otherwise.
type CompleteBatchCommandHandler struct {
	completer BatchCompleter
}

func NewCompleteBatchCommandHandler(completer BatchCompleter) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{completer: completer}
}

// Handle fails with driver.ErrDriverHasNoBatch when the driver is not delivering.
func (h CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.completer.DriverCompletedBatch(ctx, cmd.DriverID())
}
