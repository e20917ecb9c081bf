package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders in confirmation order, optionally only those in the
// given statuses.
type GetOrdersQuery struct {
	statuses []order.Status
	guard    guard.ConstructorGuard
}

func NewGetOrdersQuery(statuses ...order.Status) (GetOrdersQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	return GetOrdersQuery{
		statuses: append([]order.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}
