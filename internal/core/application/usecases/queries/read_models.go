// Package queries contains read operations. Live dispatch state is read from the
// coordinator's copies; journaled history is read from PostgreSQL with raw SQL.
package queries

import (
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
)

// Coordinator read surface. *dispatch.Coordinator satisfies all of them.
type (
	OrderReader interface {
		Order(id kernel.UUID) (*order.Order, error)
		Orders(statuses ...order.Status) []*order.Order
	}

	DriverReader interface {
		Driver(id kernel.UUID) (*driver.Driver, error)
		Drivers() []*driver.Driver
	}

	BatchReader interface {
		Batch(id kernel.UUID) (*batch.Batch, error)
		PendingBatches() []*batch.Batch
		Hub() kernel.Location
	}

	ZoneReader interface {
		ZoneDepths() map[zone.Zone]int
	}
)

// ItemView is one line of an order.
type ItemView struct {
	ProductID string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

// OrderView is the read model of an order.
type OrderView struct {
	ID               kernel.UUID
	Ref              string
	CustomerID       string
	Items            []ItemView
	Total            float64
	Location         kernel.Location
	Zone             zone.Zone
	ConfirmationCode string
	Status           order.Status
	ConfirmedAt      time.Time
	UpdatedAt        time.Time
}

// DriverView is the read model of a driver.
type DriverView struct {
	ID              kernel.UUID
	Ref             string
	Name            string
	Contact         string
	State           driver.State
	CurrentBatchID  *kernel.UUID
	PendingBatchIDs []kernel.UUID
	OrdersDelivered int
	DistanceKm      float64
	RegisteredAt    time.Time
}

// StopView is one stop of a batch.
type StopView struct {
	Sequence         int
	OrderID          kernel.UUID
	OrderRef         string
	CustomerID       string
	ConfirmationCode string
	Location         kernel.Location
	Total            float64
	Key              float64
}

// BatchView is the read model of a batch. RouteKm is the straight-line length of the
// route from Hub through every stop in sequence.
type BatchView struct {
	ID         kernel.UUID
	Ref        string
	Zone       zone.Zone
	Trigger    batch.Trigger
	CreatedAt  time.Time
	DriverID   *kernel.UUID
	AssignedAt time.Time
	Stops      []StopView
	Hub        kernel.Location
	RouteKm    float64
}

// ZoneDepth is the number of orders waiting in one zone.
type ZoneDepth struct {
	Zone  zone.Zone
	Depth int
}

func newOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = ItemView{
			ProductID: it.ProductID(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
			Subtotal:  it.Subtotal(),
		}
	}

	return OrderView{
		ID:               o.ID(),
		Ref:              o.Ref(),
		CustomerID:       o.CustomerID(),
		Items:            views,
		Total:            o.Total(),
		Location:         o.Location(),
		Zone:             o.Zone(),
		ConfirmationCode: o.ConfirmationCode(),
		Status:           o.Status(),
		ConfirmedAt:      o.ConfirmedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func newDriverView(d *driver.Driver) DriverView {
	return DriverView{
		ID:              d.ID(),
		Ref:             d.Ref(),
		Name:            d.Name(),
		Contact:         d.Contact(),
		State:           d.State(),
		CurrentBatchID:  d.CurrentBatchID(),
		PendingBatchIDs: d.PendingBatchIDs(),
		OrdersDelivered: d.OrdersDelivered(),
		DistanceKm:      d.DistanceKm(),
		RegisteredAt:    d.RegisteredAt(),
	}
}

func newBatchView(b *batch.Batch, hub kernel.Location) BatchView {
	stops := b.Stops()
	views := make([]StopView, len(stops))
	for i, s := range stops {
		views[i] = StopView{
			Sequence:         s.Sequence,
			OrderID:          s.OrderID,
			OrderRef:         s.OrderRef,
			CustomerID:       s.CustomerID,
			ConfirmationCode: s.ConfirmationCode,
			Location:         s.Location,
			Total:            s.Total,
			Key:              s.Key,
		}
	}

	return BatchView{
		ID:         b.ID(),
		Ref:        b.Ref(),
		Zone:       b.Zone(),
		Trigger:    b.Trigger(),
		CreatedAt:  b.CreatedAt(),
		DriverID:   b.DriverID(),
		AssignedAt: b.AssignedAt(),
		Stops:      views,
		Hub:        hub,
		RouteKm:    b.RouteLength(hub),
	}
}
