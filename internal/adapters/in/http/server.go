package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases the HTTP surface drives. OrderHistory is optional; the
// history route is only mounted when it is set.
type Handlers struct {
	SubmitOrder     commands.SubmitOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	RegisterDriver  commands.RegisterDriverCommandHandler
	DriverAvailable commands.DriverAvailableCommandHandler
	CompleteBatch   commands.CompleteBatchCommandHandler
	ReserveBatch    commands.ReserveBatchCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetOrders         queries.GetOrdersQueryHandler
	GetDriver         queries.GetDriverQueryHandler
	GetDrivers        queries.GetDriversQueryHandler
	GetBatch          queries.GetBatchQueryHandler
	GetPendingBatches queries.GetPendingBatchesQueryHandler
	GetZoneDepths     queries.GetZoneDepthsQueryHandler
	OrderHistory      *queries.GetOrderHistoryQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h    Handlers
	auth *OperatorAuth
}

// NewServer creates a Server. A nil auth leaves the operator routes open, which is
// only meant for local development.
func NewServer(h Handlers, auth *OperatorAuth) *Server {
	return &Server{h: h, auth: auth}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	if s.h.OrderHistory != nil {
		api.GET("/orders/:id/history", s.GetOrderHistory)
	}

	operator := []echo.MiddlewareFunc{}
	if s.auth != nil {
		operator = append(operator, s.auth.Middleware())
	}
	api.POST("/drivers", s.RegisterDriver, operator...)
	api.GET("/drivers", s.ListDrivers)
	api.GET("/drivers/:id", s.GetDriver)
	api.POST("/drivers/:id/available", s.DriverAvailable)
	api.POST("/drivers/:id/complete", s.CompleteBatch)
	api.POST("/drivers/:id/reserve", s.ReserveBatch)

	api.GET("/batches/pending", s.ListPendingBatches)
	api.GET("/batches/:id", s.GetBatch)
	api.GET("/batches/:id/route", s.GetBatchRoute)

	api.GET("/zones", s.GetZones)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
