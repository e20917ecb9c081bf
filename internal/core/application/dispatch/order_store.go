package dispatch

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderStore is the authoritative map of orders. Orders are never deleted; they only
// move through their lifecycle.
//
// Zone queues hold pointers to stored orders and read only the fields fixed at
// creation. Everything that reads status goes through the store and gets a copy.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
	seq    []kernel.UUID
}

// NewOrderStore creates an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[kernel.UUID]*order.Order)}
}

// Register stores a new Pending order.
func (s *OrderStore) Register(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.Pending {
		return fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status(), order.Pending)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrOrderAlreadyExists, o.Ref())
	}
	s.orders[o.ID()] = o
	s.seq = append(s.seq, o.ID())
	return nil
}

// Get returns a copy of the order.
func (s *OrderStore) Get(id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrder, id)
	}
	return o.Clone(), nil
}

// Transition changes one order's status.
//
// Returns:
//   - events.OrderStatusChanged: describing the change
//   - error: ErrUnknownOrder, or an error matching order.ErrInvalidTransition
func (s *OrderStore) Transition(id kernel.UUID, next order.Status, at time.Time) (events.OrderStatusChanged, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return events.OrderStatusChanged{}, fmt.Errorf("%w: %s", ErrUnknownOrder, id)
	}
	prev, err := o.Transition(next, at)
	if err != nil {
		return events.OrderStatusChanged{}, err
	}
	return events.NewOrderStatusChanged(o, prev), nil
}

// Advance moves every listed order currently in from to the status to. Orders in any
// other status, such as cancelled members of a batch, are left untouched.
func (s *OrderStore) Advance(ids []kernel.UUID, from, to order.Status, at time.Time) []events.OrderStatusChanged {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := make([]events.OrderStatusChanged, 0, len(ids))
	for _, id := range ids {
		o, ok := s.orders[id]
		if !ok || o.Status() != from {
			continue
		}
		prev, err := o.Transition(to, at)
		if err != nil {
			continue
		}
		changes = append(changes, events.NewOrderStatusChanged(o, prev))
	}
	return changes
}

// List returns copies of the orders in registration order, restricted to the given
// statuses when any are passed.
func (s *OrderStore) List(statuses ...order.Status) []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, 0, len(s.seq))
	for _, id := range s.seq {
		o := s.orders[id]
		if len(statuses) > 0 && !slices.Contains(statuses, o.Status()) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

// Len returns the number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
