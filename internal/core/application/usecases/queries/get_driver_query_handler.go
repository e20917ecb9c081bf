package queries

import (
	"context"
)

type GetDriverQueryHandler struct {
	reader DriverReader
}

func NewGetDriverQueryHandler(reader DriverReader) GetDriverQueryHandler {
	return GetDriverQueryHandler{reader: reader}
}

func (h GetDriverQueryHandler) Handle(_ context.Context, query GetDriverQuery) (DriverView, error) {
	if err := query.Validate(); err != nil {
		return DriverView{}, err
	}

	d, err := h.reader.Driver(query.DriverID())
	if err != nil {
		return DriverView{}, err
	}
	return newDriverView(d), nil
}
