package queries

import (
	"context"
)

type GetBatchQueryHandler struct {
	reader BatchReader
}

func NewGetBatchQueryHandler(reader BatchReader) GetBatchQueryHandler {
	return GetBatchQueryHandler{reader: reader}
}

func (h GetBatchQueryHandler) Handle(_ context.Context, query GetBatchQuery) (BatchView, error) {
	if err := query.Validate(); err != nil {
		return BatchView{}, err
	}

	b, err := h.reader.Batch(query.BatchID())
	if err != nil {
		return BatchView{}, err
	}
	return newBatchView(b, h.reader.Hub()), nil
}
