package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrFormDueBatchesCommandIsNotConstructed = errors.New(
	"FormDueBatchesCommand must be created via NewFormDueBatchesCommand constructor",
)

// FormDueBatchesCommand is the periodic tick that lets the age trigger fire in zones
// that receive no new orders.
type FormDueBatchesCommand struct {
	guard guard.ConstructorGuard
}

func NewFormDueBatchesCommand() FormDueBatchesCommand {
	return FormDueBatchesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c FormDueBatchesCommand) Validate() error {
	return c.guard.Validate(ErrFormDueBatchesCommandIsNotConstructed)
}
