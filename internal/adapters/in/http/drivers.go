package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterDriver handles POST /api/v1/drivers. A new driver answers 201, a contact
// that is already registered answers 200 with the existing driver.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var req RegisterDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterDriverCommand(req.Name, req.Contact)
	if err != nil {
		return fail(ctx, err)
	}
	result, err := s.h.RegisterDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	view, err := s.driverView(ctx, result.Driver.ID())
	if err != nil {
		return fail(ctx, err)
	}
	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	return ctx.JSON(code, RegisterDriverResponse{Driver: toDriver(view), Created: result.Created})
}

// ListDrivers handles GET /api/v1/drivers.
func (s *Server) ListDrivers(ctx echo.Context) error {
	views, err := s.h.GetDrivers.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]Driver, len(views))
	for i, v := range views {
		response[i] = toDriver(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDriver handles GET /api/v1/drivers/:id.
func (s *Server) GetDriver(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}
	return s.respondDriver(ctx, id)
}

// DriverAvailable handles POST /api/v1/drivers/:id/available.
func (s *Server) DriverAvailable(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewDriverAvailableCommand(id)
	if err != nil {
		return fail(ctx, err)
	}
	if _, err = s.h.DriverAvailable.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return s.respondDriver(ctx, id)
}

// CompleteBatch handles POST /api/v1/drivers/:id/complete.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewCompleteBatchCommand(id)
	if err != nil {
		return fail(ctx, err)
	}
	if _, err = s.h.CompleteBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return s.respondDriver(ctx, id)
}

// ReserveBatch handles POST /api/v1/drivers/:id/reserve.
func (s *Server) ReserveBatch(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewReserveBatchCommand(id)
	if err != nil {
		return fail(ctx, err)
	}
	b, err := s.h.ReserveBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}
	if b == nil {
		return ctx.JSON(http.StatusOK, ReserveBatchResponse{})
	}

	view, err := s.batchView(ctx, b.ID())
	if err != nil {
		return fail(ctx, err)
	}
	reserved := toBatch(view)
	return ctx.JSON(http.StatusOK, ReserveBatchResponse{Batch: &reserved})
}

func (s *Server) driverView(ctx echo.Context, id kernel.UUID) (queries.DriverView, error) {
	query, err := queries.NewGetDriverQuery(id)
	if err != nil {
		return queries.DriverView{}, err
	}
	return s.h.GetDriver.Handle(ctx.Request().Context(), query)
}

func (s *Server) respondDriver(ctx echo.Context, id kernel.UUID) error {
	view, err := s.driverView(ctx, id)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDriver(view))
}
