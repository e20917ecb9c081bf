package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels one order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command for orderID.
func NewCancelOrderCommand(orderID kernel.UUID) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
