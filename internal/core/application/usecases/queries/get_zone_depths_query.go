package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetZoneDepthsQueryIsNotConstructed = errors.New(
	"GetZoneDepthsQuery must be created via NewGetZoneDepthsQuery constructor",
)

// GetZoneDepthsQuery reports how many orders wait in each zone.
type GetZoneDepthsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetZoneDepthsQuery() GetZoneDepthsQuery {
	return GetZoneDepthsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetZoneDepthsQuery) Validate() error {
	return q.guard.Validate(ErrGetZoneDepthsQueryIsNotConstructed)
}
