package dispatch

import (
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
)

// ZoneQueue is the FIFO of one zone's orders awaiting batching. Arrival order equals
// confirmation order because orders are stamped and enqueued under the same lock.
//
// Methods ending in Locked require mu to be held by the caller.
type ZoneQueue struct {
	zone zone.Zone

	mu     sync.Mutex
	orders []*order.Order
}

// NewZoneQueue creates an empty queue for z.
func NewZoneQueue(z zone.Zone) *ZoneQueue {
	return &ZoneQueue{zone: z}
}

// Zone returns the queue's zone.
func (q *ZoneQueue) Zone() zone.Zone {
	return q.zone
}

// Len returns the number of queued orders.
func (q *ZoneQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.orders)
}

// OrderIDs returns the queued order ids, oldest first.
func (q *ZoneQueue) OrderIDs() []kernel.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]kernel.UUID, len(q.orders))
	for i, o := range q.orders {
		ids[i] = o.ID()
	}
	return ids
}

func (q *ZoneQueue) enqueueLocked(o *order.Order) {
	q.orders = append(q.orders, o)
}

func (q *ZoneQueue) lenLocked() int {
	return len(q.orders)
}

// oldestLocked returns the confirmation time of the head order, zero when empty.
func (q *ZoneQueue) oldestLocked() time.Time {
	if len(q.orders) == 0 {
		return time.Time{}
	}
	return q.orders[0].ConfirmedAt()
}

// peekLocked returns up to n of the oldest orders without removing them.
func (q *ZoneQueue) peekLocked(n int) []*order.Order {
	n = min(n, len(q.orders))
	return slices.Clone(q.orders[:n])
}

// drainLocked removes the n oldest orders.
func (q *ZoneQueue) drainLocked(n int) []*order.Order {
	n = min(n, len(q.orders))
	drained := slices.Clone(q.orders[:n])
	q.orders = slices.Delete(q.orders, 0, n)
	return drained
}

// removeLocked removes one order wherever it sits and reports whether it was queued.
func (q *ZoneQueue) removeLocked(id kernel.UUID) bool {
	idx := slices.IndexFunc(q.orders, func(o *order.Order) bool { return o.ID().IsEqual(id) })
	if idx < 0 {
		return false
	}
	q.orders = slices.Delete(q.orders, idx, idx+1)
	return true
}
