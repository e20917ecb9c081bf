package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler hands confirmed orders to the coordinator, which queues
// them and possibly forms and dispatches a batch before returning.
type SubmitOrderCommandHandler struct {
	submitter OrderSubmitter
}

// NewSubmitOrderCommandHandler creates a handler backed by submitter.
func NewSubmitOrderCommandHandler(submitter OrderSubmitter) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{submitter: submitter}
}

// Handle submits the order and returns it as it stands after batching.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.submitter.SubmitOrder(ctx, cmd.request())
}
