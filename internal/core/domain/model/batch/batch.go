package batch

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch was not created through Form.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via Form")

	// ErrBatchAlreadyAssigned is returned when a second driver is assigned to a batch.
	ErrBatchAlreadyAssigned = fmt.Errorf("%w: batch already has a driver", errs.ErrValueIsInvalid)
)

// Stop is one delivery inside a batch. It copies the order fields a driver needs,
// none of which change after the order is created.
type Stop struct {
	Sequence         int
	OrderID          kernel.UUID
	OrderRef         string
	CustomerID       string
	ConfirmationCode string
	Location         kernel.Location
	Total            float64
	Key              float64
}

// Batch is a frozen, ordered group of same-zone orders delivered by one driver.
//
// Invariants:
//   - 1 <= len(stops) <= the maximum size it was formed with
//   - every stop belongs to the batch zone
//   - stops never change; the driver is assigned at most once
type Batch struct {
	id         kernel.UUID
	zone       zone.Zone
	stops      []Stop
	trigger    Trigger
	createdAt  time.Time
	driverID   *kernel.UUID
	assignedAt time.Time

	guard guard.ConstructorGuard
}

// Form sequences orders with key and freezes them into a new batch.
//
// Parameters:
//   - id: identifier of the new batch
//   - z: zone every order must belong to
//   - orders: the drained orders, oldest first
//   - key: the sequencing key strategy
//   - maxSize: upper bound on the number of orders
//   - trigger: the rule that formed the batch
//   - createdAt: formation time
//
// Returns:
//   - *Batch: the batch with stops ascending by key, equal keys in drain order
//   - error: joined validation errors
func Form(
	id kernel.UUID,
	z zone.Zone,
	orders []*order.Order,
	key KeyFunc,
	maxSize int,
	trigger Trigger,
	createdAt time.Time,
) (*Batch, error) {
	if err := errors.Join(id.Validate(), z.Validate()); err != nil {
		return nil, err
	}
	if key == nil {
		return nil, errs.NewValueIsRequiredError("sequence key")
	}
	if len(orders) < 1 || len(orders) > maxSize {
		return nil, errs.NewValueIsOutOfRangeError("batch size", len(orders), 1, maxSize)
	}

	seq := NewStopSequencer[*order.Order](len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.Zone() != z {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"orders",
				fmt.Errorf("order %s is in zone %s, batch zone is %s", o.Ref(), o.Zone(), z),
			)
		}
		seq.Insert(o, key(o))
	}

	sorted, keys := seq.InOrder(), seq.Keys()
	stops := make([]Stop, len(sorted))
	for i, o := range sorted {
		stops[i] = Stop{
			Sequence:         i + 1,
			OrderID:          o.ID(),
			OrderRef:         o.Ref(),
			CustomerID:       o.CustomerID(),
			ConfirmationCode: o.ConfirmationCode(),
			Location:         o.Location(),
			Total:            o.Total(),
			Key:              keys[i],
		}
	}

	return &Batch{
		id:        id,
		zone:      z,
		stops:     stops,
		trigger:   trigger,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Batch was created through Form.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// ID returns the batch identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// Ref returns the short reference, e.g. "T-0A1B2C3D".
func (b *Batch) Ref() string {
	return b.id.ShortRef(kernel.BatchRefPrefix)
}

// Zone returns the zone shared by every stop.
func (b *Batch) Zone() zone.Zone {
	return b.zone
}

// Stops returns a copy of the stops in delivery order.
func (b *Batch) Stops() []Stop {
	out := make([]Stop, len(b.stops))
	copy(out, b.stops)
	return out
}

// OrderIDs returns the order identifiers in delivery order.
func (b *Batch) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(b.stops))
	for i, s := range b.stops {
		ids[i] = s.OrderID
	}
	return ids
}

// Size returns the number of stops.
func (b *Batch) Size() int {
	return len(b.stops)
}

// Trigger returns the rule that formed the batch.
func (b *Batch) Trigger() Trigger {
	return b.trigger
}

// CreatedAt returns the formation time.
func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

// DriverID returns the assigned driver, or nil while the batch is queued.
func (b *Batch) DriverID() *kernel.UUID {
	if b.driverID == nil {
		return nil
	}
	id := *b.driverID
	return &id
}

// AssignedAt returns the assignment time, zero while unassigned.
func (b *Batch) AssignedAt() time.Time {
	return b.assignedAt
}

// IsAssigned reports whether a driver holds the batch.
func (b *Batch) IsAssigned() bool {
	return b.driverID != nil
}

// AssignDriver records the driver. It can succeed only once.
func (b *Batch) AssignDriver(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if b.driverID != nil {
		return fmt.Errorf("%w: %s", ErrBatchAlreadyAssigned, b.Ref())
	}
	b.driverID = &driverID
	b.assignedAt = at
	return nil
}

// RouteLength returns the straight-line length of hub -> stop 1 -> ... -> stop n in km.
// It feeds the driver's distance counter only.
func (b *Batch) RouteLength(hub kernel.Location) float64 {
	var total float64
	prev := hub
	for _, s := range b.stops {
		if d, err := prev.DistanceTo(s.Location); err == nil {
			total += d
		}
		prev = s.Location
	}
	return total
}

// Clone returns an independent copy.
func (b *Batch) Clone() *Batch {
	c := *b
	c.stops = b.Stops()
	c.driverID = b.DriverID()
	return &c
}
