package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps core errors to HTTP status codes. Conflicts are checked first
// because their sentinels also wrap errs.ErrValueIsInvalid.
func statusOf(err error) int {
	switch {
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, driver.ErrDriverHasNoBatch),
		errors.Is(err, driver.ErrDriverIsBusy),
		errors.Is(err, batch.ErrBatchAlreadyAssigned),
		errors.Is(err, dispatch.ErrOrderAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
