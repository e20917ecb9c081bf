package queries

import (
	"context"
)

// GetPendingBatchesQueryHandler reads the dispatch queue.
type GetPendingBatchesQueryHandler struct {
	reader BatchReader
}

func NewGetPendingBatchesQueryHandler(reader BatchReader) GetPendingBatchesQueryHandler {
	return GetPendingBatchesQueryHandler{reader: reader}
}

func (h GetPendingBatchesQueryHandler) Handle(_ context.Context, query GetPendingBatchesQuery) ([]BatchView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	hub := h.reader.Hub()
	pending := h.reader.PendingBatches()
	views := make([]BatchView, len(pending))
	for i, b := range pending {
		views[i] = newBatchView(b, hub)
	}
	return views, nil
}
