package queries

import (
	"context"

	"dispatch/internal/core/domain/model/zone"
)

type GetZoneDepthsQueryHandler struct {
	reader ZoneReader
}

func NewGetZoneDepthsQueryHandler(reader ZoneReader) GetZoneDepthsQueryHandler {
	return GetZoneDepthsQueryHandler{reader: reader}
}

// Handle returns one entry per zone in NW, NE, SW, SE order, empty zones included.
func (h GetZoneDepthsQueryHandler) Handle(_ context.Context, query GetZoneDepthsQuery) ([]ZoneDepth, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	depths := h.reader.ZoneDepths()
	out := make([]ZoneDepth, 0, len(zone.All()))
	for _, z := range zone.All() {
		out = append(out, ZoneDepth{Zone: z, Depth: depths[z]})
	}
	return out, nil
}
