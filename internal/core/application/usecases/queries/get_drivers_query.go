package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery lists every driver in registration order.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}
