package queries

import (
	"context"
)

type GetOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetOrdersQueryHandler(reader OrderReader) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{reader: reader}
}

func (h GetOrdersQueryHandler) Handle(_ context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := h.reader.Orders(query.Statuses()...)
	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = newOrderView(o)
	}
	return views, nil
}
