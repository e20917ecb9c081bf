package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
)

// ErrDriverNotFound is returned when no driver can take the batch. Callers treat it
// as "leave the batch queued", not as a failure.
var ErrDriverNotFound = errors.New("driver not found")

// BatchDispatcher matches a queued batch with a driver.
//
// Selection rules:
//   - with a preferred driver, only that driver is considered and only if Available
//   - otherwise the first Available driver in registration order wins
//
// Example:
//
//	d, err := services.NewBatchDispatcher().Dispatch(b, drivers, nil, now)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // keep the batch queued
//	}
type BatchDispatcher struct{}

// NewBatchDispatcher creates a BatchDispatcher.
func NewBatchDispatcher() BatchDispatcher {
	return BatchDispatcher{}
}

// Dispatch assigns b to a driver chosen from drivers.
//
// Parameters:
//   - b: an unassigned batch
//   - drivers: candidates in registration order
//   - preferred: restricts the choice to one driver when not nil
//   - at: assignment time
//
// Returns:
//   - *driver.Driver: the driver now Busy with b
//   - error: ErrDriverNotFound if nobody is free, or a validation error
func (BatchDispatcher) Dispatch(
	b *batch.Batch,
	drivers []*driver.Driver,
	preferred *driver.Driver,
	at time.Time,
) (*driver.Driver, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.IsAssigned() {
		return nil, batch.ErrBatchAlreadyAssigned
	}

	chosen, err := findDriver(drivers, preferred)
	if err != nil {
		return nil, err
	}

	if err = chosen.TakeBatch(b.ID()); err != nil {
		return nil, err
	}
	if err = b.AssignDriver(chosen.ID(), at); err != nil {
		return nil, err
	}

	return chosen, nil
}

func findDriver(drivers []*driver.Driver, preferred *driver.Driver) (*driver.Driver, error) {
	if preferred != nil {
		if err := preferred.Validate(); err != nil {
			return nil, err
		}
		if !preferred.IsAvailable() {
			return nil, ErrDriverNotFound
		}
		return preferred, nil
	}

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.IsAvailable() {
			return d, nil
		}
	}

	return nil, ErrDriverNotFound
}
