package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

type ItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SubmitOrderRequest is a confirmed cart. Lat and Lon are required.
type SubmitOrderRequest struct {
	CustomerID       string        `json:"customer_id"`
	Items            []ItemRequest `json:"items"`
	Total            *float64      `json:"total,omitempty"`
	Lat              *float64      `json:"lat"`
	Lon              *float64      `json:"lon"`
	ConfirmationCode string        `json:"confirmation_code,omitempty"`
	SequenceKey      *float64      `json:"sequence_key,omitempty"`
}

type RegisterDriverRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type Order struct {
	ID               string    `json:"id"`
	Ref              string    `json:"ref"`
	CustomerID       string    `json:"customer_id"`
	Items            []Item    `json:"items"`
	Total            float64   `json:"total"`
	Location         Location  `json:"location"`
	Zone             string    `json:"zone"`
	ConfirmationCode string    `json:"confirmation_code"`
	Status           string    `json:"status"`
	ConfirmedAt      time.Time `json:"confirmed_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Driver struct {
	ID              string    `json:"id"`
	Ref             string    `json:"ref"`
	Name            string    `json:"name"`
	Contact         string    `json:"contact"`
	State           string    `json:"state"`
	CurrentBatchID  *string   `json:"current_batch_id"`
	PendingBatchIDs []string  `json:"pending_batch_ids"`
	OrdersDelivered int       `json:"orders_delivered"`
	DistanceKm      float64   `json:"distance_km"`
	RegisteredAt    time.Time `json:"registered_at"`
}

type Stop struct {
	Sequence         int      `json:"sequence"`
	OrderID          string   `json:"order_id"`
	OrderRef         string   `json:"order_ref"`
	CustomerID       string   `json:"customer_id"`
	ConfirmationCode string   `json:"confirmation_code"`
	Location         Location `json:"location"`
	Total            float64  `json:"total"`
}

type Batch struct {
	ID         string     `json:"id"`
	Ref        string     `json:"ref"`
	Zone       string     `json:"zone"`
	Trigger    string     `json:"trigger"`
	CreatedAt  time.Time  `json:"created_at"`
	DriverID   *string    `json:"driver_id"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
	Stops      []Stop     `json:"stops"`
	RouteKm    float64    `json:"route_km"`
}

type ZoneDepth struct {
	Zone  string `json:"zone"`
	Depth int    `json:"depth"`
}

type StatusChange struct {
	Previous  string    `json:"previous"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// RegisterDriverResponse tells whether the driver was new and whether it left with a
// batch straight away.
type RegisterDriverResponse struct {
	Driver  Driver `json:"driver"`
	Created bool   `json:"created"`
}

// ReserveBatchResponse carries the reserved batch, nil when nothing was waiting.
type ReserveBatchResponse struct {
	Batch *Batch `json:"batch"`
}

func toLocation(l kernel.Location) Location {
	return Location{Lat: l.Lat(), Lon: l.Lon()}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrder(v queries.OrderView) Order {
	items := make([]Item, len(v.Items))
	for i, it := range v.Items {
		items[i] = Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		}
	}

	return Order{
		ID:               v.ID.String(),
		Ref:              v.Ref,
		CustomerID:       v.CustomerID,
		Items:            items,
		Total:            v.Total,
		Location:         toLocation(v.Location),
		Zone:             v.Zone.String(),
		ConfirmationCode: v.ConfirmationCode,
		Status:           v.Status.String(),
		ConfirmedAt:      v.ConfirmedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func toDriver(v queries.DriverView) Driver {
	pending := make([]string, len(v.PendingBatchIDs))
	for i, id := range v.PendingBatchIDs {
		pending[i] = id.String()
	}

	return Driver{
		ID:              v.ID.String(),
		Ref:             v.Ref,
		Name:            v.Name,
		Contact:         v.Contact,
		State:           v.State.String(),
		CurrentBatchID:  optionalID(v.CurrentBatchID),
		PendingBatchIDs: pending,
		OrdersDelivered: v.OrdersDelivered,
		DistanceKm:      v.DistanceKm,
		RegisteredAt:    v.RegisteredAt,
	}
}

func toBatch(v queries.BatchView) Batch {
	stops := make([]Stop, len(v.Stops))
	for i, s := range v.Stops {
		stops[i] = Stop{
			Sequence:         s.Sequence,
			OrderID:          s.OrderID.String(),
			OrderRef:         s.OrderRef,
			CustomerID:       s.CustomerID,
			ConfirmationCode: s.ConfirmationCode,
			Location:         toLocation(s.Location),
			Total:            s.Total,
		}
	}

	out := Batch{
		ID:        v.ID.String(),
		Ref:       v.Ref,
		Zone:      v.Zone.String(),
		Trigger:   v.Trigger.String(),
		CreatedAt: v.CreatedAt,
		DriverID:  optionalID(v.DriverID),
		Stops:     stops,
		RouteKm:   v.RouteKm,
	}
	if !v.AssignedAt.IsZero() {
		assigned := v.AssignedAt
		out.AssignedAt = &assigned
	}
	return out
}
