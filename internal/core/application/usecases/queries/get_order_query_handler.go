package queries

import (
	"context"
)

// GetOrderQueryHandler reads orders from the coordinator.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns the order or an error matching errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(_ context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.Order(query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	return newOrderView(o), nil
}
