package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListPendingBatches handles GET /api/v1/batches/pending, oldest first.
func (s *Server) ListPendingBatches(ctx echo.Context) error {
	views, err := s.h.GetPendingBatches.Handle(ctx.Request().Context(), queries.NewGetPendingBatchesQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]Batch, len(views))
	for i, v := range views {
		response[i] = toBatch(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetBatch handles GET /api/v1/batches/:id.
func (s *Server) GetBatch(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid batch id")
	}

	view, err := s.batchView(ctx, id)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toBatch(view))
}

// GetBatchRoute handles GET /api/v1/batches/:id/route.
func (s *Server) GetBatchRoute(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid batch id")
	}

	view, err := s.batchView(ctx, id)
	if err != nil {
		return fail(ctx, err)
	}
	body, err := routeGeoJSON(view)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Blob(http.StatusOK, "application/geo+json", body)
}

// GetZones handles GET /api/v1/zones.
func (s *Server) GetZones(ctx echo.Context) error {
	depths, err := s.h.GetZoneDepths.Handle(ctx.Request().Context(), queries.NewGetZoneDepthsQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]ZoneDepth, len(depths))
	for i, d := range depths {
		response[i] = ZoneDepth{Zone: d.Zone.String(), Depth: d.Depth}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) batchView(ctx echo.Context, id kernel.UUID) (queries.BatchView, error) {
	query, err := queries.NewGetBatchQuery(id)
	if err != nil {
		return queries.BatchView{}, err
	}
	return s.h.GetBatch.Handle(ctx.Request().Context(), query)
}
