package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverQueryIsNotConstructed = errors.New(
	"GetDriverQuery must be created via NewGetDriverQuery constructor",
)

// GetDriverQuery reads one driver.
type GetDriverQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDriverQuery(driverID kernel.UUID) (GetDriverQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverQuery{}, err
	}
	return GetDriverQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverQueryIsNotConstructed)
}

func (q GetDriverQuery) DriverID() kernel.UUID {
	return q.driverID
}
