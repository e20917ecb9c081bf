// Package commands contains the operations that change dispatch state.
// Every command is built through its constructor, which validates the input, and is
// executed by a handler that delegates to the dispatch coordinator.
package commands

import (
	"context"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// The coordinator surface each handler needs. *dispatch.Coordinator satisfies all of them.
type (
	// OrderSubmitter accepts confirmed orders.
	OrderSubmitter interface {
		SubmitOrder(ctx context.Context, req dispatch.SubmitOrderRequest) (*order.Order, error)
	}

	// OrderCanceller cancels orders.
	OrderCanceller interface {
		CancelOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
	}

	// DriverRegistrar registers drivers.
	DriverRegistrar interface {
		RegisterDriver(ctx context.Context, name, contact string) (*driver.Driver, bool, error)
	}

	// DriverAvailabilityUpdater reacts to a driver reporting in.
	DriverAvailabilityUpdater interface {
		DriverBecameAvailable(ctx context.Context, driverID kernel.UUID) (*driver.Driver, error)
	}

	// BatchCompleter closes a driver's current batch.
	BatchCompleter interface {
		DriverCompletedBatch(ctx context.Context, driverID kernel.UUID) (*driver.Driver, error)
	}

	// BatchReserver hands a follow-up batch to a busy driver.
	BatchReserver interface {
		ReserveNextBatch(ctx context.Context, driverID kernel.UUID) (*batch.Batch, error)
	}

	// DueBatchFormer runs the age trigger over every zone.
	DueBatchFormer interface {
		FormDueBatches(ctx context.Context) (int, error)
	}
)
