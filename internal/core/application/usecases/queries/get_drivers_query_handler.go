package queries

import (
	"context"
)

// GetDriversQueryHandler lists drivers with their state and delivery counters.
type GetDriversQueryHandler struct {
	reader DriverReader
}

func NewGetDriversQueryHandler(reader DriverReader) GetDriversQueryHandler {
	return GetDriversQueryHandler{reader: reader}
}

func (h GetDriversQueryHandler) Handle(_ context.Context, query GetDriversQuery) ([]DriverView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := h.reader.Drivers()
	views := make([]DriverView, len(drivers))
	for i, d := range drivers {
		views[i] = newDriverView(d)
	}
	return views, nil
}
