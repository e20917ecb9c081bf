// Package journalrepo maps dispatch events onto the journal tables.
package journalrepo

import (
	"time"

	"dispatch/internal/core/domain/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDTO is the latest journaled status of an order.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ref        string    `gorm:"size:16;index"`
	CustomerID string    `gorm:"size:128;index"`
	Zone       int       `gorm:"type:smallint;index"`
	Status     int       `gorm:"type:smallint;index"`
	UpdatedAt  time.Time
}

// TableName specifies the database table name for journaled orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO is one row of an order's status history.
type StatusChangeDTO struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index:idx_status_history_order,priority:1"`
	Previous  int       `gorm:"type:smallint"`
	Status    int       `gorm:"type:smallint"`
	ChangedAt time.Time `gorm:"index:idx_status_history_order,priority:2"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// BatchDTO is an assigned batch.
type BatchDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ref        string    `gorm:"size:16"`
	Zone       int       `gorm:"type:smallint"`
	DriverID   uuid.UUID `gorm:"type:uuid;index"`
	DriverRef  string    `gorm:"size:16"`
	DriverName string    `gorm:"size:128"`
	AssignedAt time.Time
	Stops      []StopDTO `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
}

func (BatchDTO) TableName() string {
	return "batches"
}

// StopDTO is one stop of an assigned batch.
type StopDTO struct {
	BatchID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence         int       `gorm:"primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	OrderRef         string    `gorm:"size:16"`
	ConfirmationCode string    `gorm:"size:16"`
	Lat              float64
	Lon              float64
	SequenceKey      float64
	Total            float64 `gorm:"type:numeric(12,2)"`
}

func (StopDTO) TableName() string {
	return "batch_stops"
}

// AutoMigrate creates or updates the journal tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{}, &StatusChangeDTO{}, &BatchDTO{}, &StopDTO{})
}

func orderFromEvent(e events.OrderStatusChanged) OrderDTO {
	return OrderDTO{
		ID:         e.OrderID.Bytes(),
		Ref:        e.OrderRef,
		CustomerID: e.CustomerID,
		Zone:       int(e.Zone),
		Status:     int(e.Status),
		UpdatedAt:  e.ChangedAt,
	}
}

func statusChangeFromEvent(e events.OrderStatusChanged) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID:   e.OrderID.Bytes(),
		Previous:  int(e.Previous),
		Status:    int(e.Status),
		ChangedAt: e.ChangedAt,
	}
}

func batchFromEvent(e events.BatchAssigned) BatchDTO {
	stops := make([]StopDTO, len(e.Stops))
	for i, s := range e.Stops {
		stops[i] = StopDTO{
			BatchID:          e.BatchID.Bytes(),
			Sequence:         s.Sequence,
			OrderID:          s.OrderID.Bytes(),
			OrderRef:         s.OrderRef,
			ConfirmationCode: s.ConfirmationCode,
			Lat:              s.Location.Lat(),
			Lon:              s.Location.Lon(),
			SequenceKey:      s.Key,
			Total:            s.Total,
		}
	}

	return BatchDTO{
		ID:         e.BatchID.Bytes(),
		Ref:        e.BatchRef,
		Zone:       int(e.Zone),
		DriverID:   e.DriverID.Bytes(),
		DriverRef:  e.DriverRef,
		DriverName: e.DriverName,
		AssignedAt: e.AssignedAt,
		Stops:      stops,
	}
}
