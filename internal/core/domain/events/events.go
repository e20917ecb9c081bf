// Package events defines the notifications the dispatch core emits. Events are plain
// values with no references into core state, so sinks may process them asynchronously.
package events

import (
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
)

// Event is implemented by every domain event.
type Event interface {
	// Name is a stable, dot separated event name, e.g. "batch.assigned".
	Name() string
	// OccurredAt is when the change happened.
	OccurredAt() time.Time
}

// Stop is one delivery in an assigned batch.
type Stop struct {
	Sequence         int
	OrderID          kernel.UUID
	OrderRef         string
	CustomerID       string
	ConfirmationCode string
	Location         kernel.Location
	Key              float64
	Total            float64
}

// BatchAssigned tells the driver channel which stops a driver must deliver, in order.
type BatchAssigned struct {
	BatchID       kernel.UUID
	BatchRef      string
	Zone          zone.Zone
	DriverID      kernel.UUID
	DriverRef     string
	DriverName    string
	DriverContact string
	Stops         []Stop
	AssignedAt    time.Time
}

// NewBatchAssigned builds the event from an assigned batch and its driver.
func NewBatchAssigned(b *batch.Batch, d *driver.Driver) BatchAssigned {
	stops := b.Stops()
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[i] = Stop{
			Sequence:         s.Sequence,
			OrderID:          s.OrderID,
			OrderRef:         s.OrderRef,
			CustomerID:       s.CustomerID,
			ConfirmationCode: s.ConfirmationCode,
			Location:         s.Location,
			Key:              s.Key,
			Total:            s.Total,
		}
	}

	return BatchAssigned{
		BatchID:       b.ID(),
		BatchRef:      b.Ref(),
		Zone:          b.Zone(),
		DriverID:      d.ID(),
		DriverRef:     d.Ref(),
		DriverName:    d.Name(),
		DriverContact: d.Contact(),
		Stops:         out,
		AssignedAt:    b.AssignedAt(),
	}
}

func (e BatchAssigned) Name() string {
	return "batch.assigned"
}

func (e BatchAssigned) OccurredAt() time.Time {
	return e.AssignedAt
}

// OrderStatusChanged tells the customer channel about a lifecycle change.
type OrderStatusChanged struct {
	OrderID    kernel.UUID
	OrderRef   string
	CustomerID string
	Zone       zone.Zone
	Previous   order.Status
	Status     order.Status
	ChangedAt  time.Time
}

// NewOrderStatusChanged builds the event from an order after its transition.
func NewOrderStatusChanged(o *order.Order, previous order.Status) OrderStatusChanged {
	return OrderStatusChanged{
		OrderID:    o.ID(),
		OrderRef:   o.Ref(),
		CustomerID: o.CustomerID(),
		Zone:       o.Zone(),
		Previous:   previous,
		Status:     o.Status(),
		ChangedAt:  o.UpdatedAt(),
	}
}

func (e OrderStatusChanged) Name() string {
	return "order.status_changed"
}

func (e OrderStatusChanged) OccurredAt() time.Time {
	return e.ChangedAt
}
