package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetPendingBatchesQueryIsNotConstructed = errors.New(
	"GetPendingBatchesQuery must be created via NewGetPendingBatchesQuery constructor",
)

// GetPendingBatchesQuery lists the batches waiting for a driver, head first.
type GetPendingBatchesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingBatchesQuery() GetPendingBatchesQuery {
	return GetPendingBatchesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingBatchesQueryIsNotConstructed)
}
