package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand reports that a driver delivered every stop of the current batch.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand creates a command for driverID.
func NewCompleteBatchCommand(driverID kernel.UUID) (CompleteBatchCommand, error) {
	if err := driverID.Validate(); err != nil {
		return CompleteBatchCommand{}, err
	}
	return CompleteBatchCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

func (c CompleteBatchCommand) DriverID() kernel.UUID {
	return c.driverID
}
