package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// StatusChangeView is one journaled status change.
type StatusChangeView struct {
	Previous  order.Status
	Status    order.Status
	ChangedAt time.Time
}

// GetOrderHistoryQueryHandler reads an order's status history from the journal.
//
// Example:
//
//	query, _ := NewGetOrderHistoryQuery(orderID)
//	history, err := NewGetOrderHistoryQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, change := range history {
//	    fmt.Printf("%s: %s -> %s\n", change.ChangedAt, change.Previous, change.Status)
//	}
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the changes oldest first. An order that was never journaled has an
// empty history.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]StatusChangeView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			previous,
			status,
			changed_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeView, 0)
	for rows.Next() {
		var (
			change           StatusChangeView
			previous, status int
		)
		if err = rows.Scan(&previous, &status, &change.ChangedAt); err != nil {
			return nil, err
		}
		change.Previous = order.Status(previous)
		change.Status = order.Status(status)
		history = append(history, change)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
