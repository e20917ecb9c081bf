package dispatch

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

var (
	// ErrUnknownOrder is returned for an order id nothing was registered under.
	ErrUnknownOrder = fmt.Errorf("%w: unknown order", errs.ErrObjectNotFound)
	// ErrUnknownDriver is returned for a driver id nothing was registered under.
	ErrUnknownDriver = fmt.Errorf("%w: unknown driver", errs.ErrObjectNotFound)
	// ErrUnknownBatch is returned for a batch id nothing was formed under.
	ErrUnknownBatch = fmt.Errorf("%w: unknown batch", errs.ErrObjectNotFound)
	// ErrOrderAlreadyExists is returned when an order id is registered twice.
	ErrOrderAlreadyExists = fmt.Errorf("%w: order already exists", errs.ErrValueIsInvalid)
)
