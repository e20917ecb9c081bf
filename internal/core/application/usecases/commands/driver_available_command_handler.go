package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// DriverAvailableCommandHandler offers the dispatch queue to a driver that reported in.
// A busy driver is returned unchanged.
type DriverAvailableCommandHandler struct {
	updater DriverAvailabilityUpdater
}

func NewDriverAvailableCommandHandler(updater DriverAvailabilityUpdater) DriverAvailableCommandHandler {
	return DriverAvailableCommandHandler{updater: updater}
}

func (h DriverAvailableCommandHandler) Handle(ctx context.Context, cmd DriverAvailableCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.updater.DriverBecameAvailable(ctx, cmd.DriverID())
}
