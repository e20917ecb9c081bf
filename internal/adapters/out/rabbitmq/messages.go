package rabbitmq

import (
	"time"

	"dispatch/internal/core/domain/events"
)

// DriverMessage identifies the driver a batch went to.
type DriverMessage struct {
	ID      string `json:"id"`
	Ref     string `json:"ref"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// StopMessage is one stop of an assigned batch.
type StopMessage struct {
	Sequence         int     `json:"sequence"`
	OrderID          string  `json:"order_id"`
	OrderRef         string  `json:"order_ref"`
	CustomerID       string  `json:"customer_id"`
	ConfirmationCode string  `json:"confirmation_code"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Total            float64 `json:"total"`
}

// BatchAssignedMessage is the body published on batch.assigned.<zone>.
type BatchAssignedMessage struct {
	BatchID    string        `json:"batch_id"`
	BatchRef   string        `json:"batch_ref"`
	Zone       string        `json:"zone"`
	Driver     DriverMessage `json:"driver"`
	Stops      []StopMessage `json:"stops"`
	AssignedAt time.Time     `json:"assigned_at"`
}

// OrderStatusMessage is the body published on order.status.<status>.
type OrderStatusMessage struct {
	OrderID    string    `json:"order_id"`
	OrderRef   string    `json:"order_ref"`
	CustomerID string    `json:"customer_id"`
	Zone       string    `json:"zone"`
	Previous   string    `json:"previous"`
	Status     string    `json:"status"`
	ChangedAt  time.Time `json:"changed_at"`
}

func newBatchAssignedMessage(e events.BatchAssigned) BatchAssignedMessage {
	stops := make([]StopMessage, len(e.Stops))
	for i, s := range e.Stops {
		stops[i] = StopMessage{
			Sequence:         s.Sequence,
			OrderID:          s.OrderID.String(),
			OrderRef:         s.OrderRef,
			CustomerID:       s.CustomerID,
			ConfirmationCode: s.ConfirmationCode,
			Lat:              s.Location.Lat(),
			Lon:              s.Location.Lon(),
			Total:            s.Total,
		}
	}

	return BatchAssignedMessage{
		BatchID:  e.BatchID.String(),
		BatchRef: e.BatchRef,
		Zone:     e.Zone.String(),
		Driver: DriverMessage{
			ID:      e.DriverID.String(),
			Ref:     e.DriverRef,
			Name:    e.DriverName,
			Contact: e.DriverContact,
		},
		Stops:      stops,
		AssignedAt: e.AssignedAt,
	}
}

func newOrderStatusMessage(e events.OrderStatusChanged) OrderStatusMessage {
	return OrderStatusMessage{
		OrderID:    e.OrderID.String(),
		OrderRef:   e.OrderRef,
		CustomerID: e.CustomerID,
		Zone:       e.Zone.String(),
		Previous:   e.Previous.String(),
		Status:     e.Status.String(),
		ChangedAt:  e.ChangedAt,
	}
}
