package journalrepo

import (
	"context"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJournalRepository implements ports.JournalRepository using GORM.
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a repository on db, which may be a transaction.
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// RecordOrderStatus upserts the order row and appends the change to its history.
// Events can arrive out of order, so the order row only moves forward in time.
func (r *GormJournalRepository) RecordOrderStatus(ctx context.Context, event events.OrderStatusChanged) error {
	if err := event.OrderID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	snapshot := orderFromEvent(event)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: `"orders"."updated_at" <= excluded.updated_at`},
		}},
	}).Create(&snapshot).Error
	if err != nil {
		return err
	}

	change := statusChangeFromEvent(event)
	return db.Create(&change).Error
}

// RecordBatchAssignment writes the batch and replaces its stops.
func (r *GormJournalRepository) RecordBatchAssignment(ctx context.Context, event events.BatchAssigned) error {
	if err := event.BatchID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := batchFromEvent(event)
	stops := dto.Stops
	dto.Stops = nil

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"driver_id", "driver_ref", "driver_name", "assigned_at"}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	if err = db.Where("batch_id = ?", dto.ID).Delete(&StopDTO{}).Error; err != nil {
		return err
	}
	if len(stops) == 0 {
		return nil
	}
	return db.Create(&stops).Error
}

// OrderHistory returns the journaled changes of one order, oldest first.
func (r *GormJournalRepository) OrderHistory(ctx context.Context, orderID kernel.UUID) ([]ports.StatusRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("changed_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]ports.StatusRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = ports.StatusRecord{
			OrderID:   orderID,
			Previous:  order.Status(dto.Previous),
			Status:    order.Status(dto.Status),
			ChangedAt: dto.ChangedAt,
		}
	}
	return records, nil
}
