package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReserveBatchCommandIsNotConstructed = errors.New(
	"ReserveBatchCommand must be created via NewReserveBatchCommand constructor",
)

// ReserveBatchCommand asks for the next queued batch on behalf of a busy driver.
type ReserveBatchCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReserveBatchCommand creates a command for driverID.
func NewReserveBatchCommand(driverID kernel.UUID) (ReserveBatchCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ReserveBatchCommand{}, err
	}
	return ReserveBatchCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveBatchCommand) Validate() error {
	return c.guard.Validate(ErrReserveBatchCommandIsNotConstructed)
}

func (c ReserveBatchCommand) DriverID() kernel.UUID {
	return c.driverID
}
