package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDriverAvailableCommandIsNotConstructed = errors.New(
	"DriverAvailableCommand must be created via NewDriverAvailableCommand constructor",
)

// DriverAvailableCommand reports that a driver is online and free to take a batch.
type DriverAvailableCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDriverAvailableCommand creates a command for driverID.
func NewDriverAvailableCommand(driverID kernel.UUID) (DriverAvailableCommand, error) {
	if err := driverID.Validate(); err != nil {
		return DriverAvailableCommand{}, err
	}
	return DriverAvailableCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DriverAvailableCommand) Validate() error {
	return c.guard.Validate(ErrDriverAvailableCommandIsNotConstructed)
}

func (c DriverAvailableCommand) DriverID() kernel.UUID {
	return c.driverID
}
