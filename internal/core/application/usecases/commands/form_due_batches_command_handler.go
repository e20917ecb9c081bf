package commands

import (
	"context"
)

// FormDueBatchesCommandHandler sweeps every zone for overdue orders.
type FormDueBatchesCommandHandler struct {
	former DueBatchFormer
}

func NewFormDueBatchesCommandHandler(former DueBatchFormer) FormDueBatchesCommandHandler {
	return FormDueBatchesCommandHandler{former: former}
}

// Handle returns the number of batches formed by this sweep.
func (h FormDueBatchesCommandHandler) Handle(ctx context.Context, cmd FormDueBatchesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.former.FormDueBatches(ctx)
}
