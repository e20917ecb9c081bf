package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels orders through the coordinator.
type CancelOrderCommandHandler struct {
	canceller OrderCanceller
}

func NewCancelOrderCommandHandler(canceller OrderCanceller) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{canceller: canceller}
}

// Handle cancels the order. Delivered and cancelled orders fail with an error
// matching order.ErrInvalidTransition.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.canceller.CancelOrder(ctx, cmd.OrderID())
}
