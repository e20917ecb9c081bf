package http

import (
	"net/http"
	"strings"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// SubmitOrder handles POST /api/v1/orders.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if req.Lat == nil || req.Lon == nil {
		return badRequest(ctx, "lat and lon are required")
	}

	location, err := kernel.NewLocation(*req.Lat, *req.Lon)
	if err != nil {
		return fail(ctx, err)
	}

	items := make([]commands.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = commands.Item{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	cmd, err := commands.NewSubmitOrderCommand(req.CustomerID, items, location)
	if err != nil {
		return fail(ctx, err)
	}
	if req.Total != nil {
		cmd = cmd.WithTotal(*req.Total)
	}
	if req.ConfirmationCode != "" {
		cmd = cmd.WithConfirmationCode(req.ConfirmationCode)
	}
	if req.SequenceKey != nil {
		cmd = cmd.WithSequenceKey(*req.SequenceKey)
	}

	o, err := s.h.SubmitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusCreated, o.ID())
}

// ListOrders handles GET /api/v1/orders. The optional status parameter is a comma
// separated list, e.g. ?status=pending,batched.
func (s *Server) ListOrders(ctx echo.Context) error {
	var statuses []order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			st, err := order.ParseStatus(name)
			if err != nil {
				return fail(ctx, err)
			}
			statuses = append(statuses, st)
		}
	}

	query, err := queries.NewGetOrdersQuery(statuses...)
	if err != nil {
		return fail(ctx, err)
	}
	views, err := s.h.GetOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return fail(ctx, err)
	}
	if _, err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return fail(ctx, err)
	}
	changes, err := s.h.OrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]StatusChange, len(changes))
	for i, c := range changes {
		response[i] = StatusChange{
			Previous:  c.Previous.String(),
			Status:    c.Status.String(),
			ChangedAt: c.ChangedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) respondOrder(ctx echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(ctx, err)
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(code, toOrder(view))
}

func paramID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}
