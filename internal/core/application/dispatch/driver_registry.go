package dispatch

import (
	"fmt"
	"sync"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// DriverRegistry tracks drivers and every formed batch, and matches available drivers
// against the DispatchQueue. One mutex covers the registry and the queue, so a batch
// is popped and a driver marked busy in a single step.
type DriverRegistry struct {
	store      *OrderStore
	dispatcher services.BatchDispatcher
	clock      ports.Clock
	hub        kernel.Location

	mu        sync.Mutex
	drivers   []*driver.Driver
	byID      map[kernel.UUID]*driver.Driver
	byContact map[string]*driver.Driver
	batches   map[kernel.UUID]*batch.Batch
	queue     *DispatchQueue
}

// NewDriverRegistry creates an empty registry. hub is where every route starts.
func NewDriverRegistry(store *OrderStore, clock ports.Clock, hub kernel.Location) *DriverRegistry {
	return &DriverRegistry{
		store:      store,
		dispatcher: services.NewBatchDispatcher(),
		clock:      clock,
		hub:        hub,
		byID:       make(map[kernel.UUID]*driver.Driver),
		byContact:  make(map[string]*driver.Driver),
		batches:    make(map[kernel.UUID]*batch.Batch),
		queue:      NewDispatchQueue(),
	}
}

// Register adds a driver, or returns the one already registered under contact.
// A new driver is offered the head of the DispatchQueue immediately.
//
// Returns:
//   - *driver.Driver: a copy of the driver after any assignment
//   - bool: true if the driver was created by this call
//   - []events.Event: events to publish
//   - error: validation error
func (r *DriverRegistry) Register(name, contact string) (*driver.Driver, bool, []events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byContact[driver.NormalizeContact(contact)]; ok {
		return existing.Clone(), false, nil, nil
	}

	d, err := driver.NewDriver(kernel.NewUUID(), name, contact, r.clock.Now())
	if err != nil {
		return nil, false, nil, err
	}
	r.drivers = append(r.drivers, d)
	r.byID[d.ID()] = d
	r.byContact[d.Contact()] = d

	evts := r.tryAssignLocked(d)
	return d.Clone(), true, evts, nil
}

// Enqueue records a newly formed batch, pushes it onto the DispatchQueue and offers
// the queue to the available drivers.
func (r *DriverRegistry) Enqueue(b *batch.Batch) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batches[b.ID()] = b
	r.queue.Push(b)
	return r.tryAssignLocked(nil)
}

// Available offers the queue to an available driver. A busy driver is left alone.
func (r *DriverRegistry) Available(driverID kernel.UUID) (*driver.Driver, []events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.driverLocked(driverID)
	if err != nil {
		return nil, nil, err
	}
	if !d.IsAvailable() {
		return d.Clone(), nil, nil
	}
	evts := r.tryAssignLocked(d)
	return d.Clone(), evts, nil
}

// Complete closes the driver's current batch: its dispatched orders become delivered,
// the counters grow, and the driver moves on to a reserved batch or becomes available
// and is offered the queue.
//
// Returns ErrDriverHasNoBatch when the driver is not busy.
func (r *DriverRegistry) Complete(driverID kernel.UUID) (*driver.Driver, []events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.driverLocked(driverID)
	if err != nil {
		return nil, nil, err
	}
	current := d.CurrentBatchID()
	if current == nil {
		return nil, nil, fmt.Errorf("%w: %s", driver.ErrDriverHasNoBatch, d.Ref())
	}
	b, ok := r.batches[*current]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBatch, current)
	}

	now := r.clock.Now()
	var evts []events.Event
	delivered := r.store.Advance(b.OrderIDs(), order.Dispatched, order.Delivered, now)
	for _, e := range delivered {
		evts = append(evts, e)
	}
	d.RecordDelivery(len(delivered), b.RouteLength(r.hub))

	_, next, err := d.Release()
	if err != nil {
		return nil, nil, err
	}
	if next == nil {
		evts = append(evts, r.tryAssignLocked(d)...)
	}

	return d.Clone(), evts, nil
}

// Reserve lets a busy driver take the head of the DispatchQueue as a follow-up batch.
// The batch is assigned to the driver at once and started when the current one completes.
//
// Returns:
//   - *batch.Batch: a copy of the reserved batch, nil when the queue was empty
//   - []events.Event: events to publish
//   - error: ErrUnknownDriver, or driver.ErrDriverHasNoBatch for an available driver
func (r *DriverRegistry) Reserve(driverID kernel.UUID) (*batch.Batch, []events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.driverLocked(driverID)
	if err != nil {
		return nil, nil, err
	}
	if d.IsAvailable() {
		return nil, nil, fmt.Errorf("%w: %s", driver.ErrDriverHasNoBatch, d.Ref())
	}

	head := r.queue.Peek()
	if head == nil {
		return nil, nil, nil
	}

	now := r.clock.Now()
	if err = head.AssignDriver(d.ID(), now); err != nil {
		return nil, nil, err
	}
	if err = d.QueueBatch(head.ID()); err != nil {
		return nil, nil, err
	}
	r.queue.Pop()

	return head.Clone(), r.assignmentEvents(head, d, now), nil
}

// Driver returns a copy of one driver.
func (r *DriverRegistry) Driver(id kernel.UUID) (*driver.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.driverLocked(id)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

// Drivers returns copies of every driver in registration order.
func (r *DriverRegistry) Drivers() []*driver.Driver {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*driver.Driver, len(r.drivers))
	for i, d := range r.drivers {
		out[i] = d.Clone()
	}
	return out
}

// Batch returns a copy of a formed batch.
func (r *DriverRegistry) Batch(id kernel.UUID) (*batch.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBatch, id)
	}
	return b.Clone(), nil
}

// Pending returns copies of the batches still waiting for a driver, head first.
func (r *DriverRegistry) Pending() []*batch.Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queue.Snapshot()
}

func (r *DriverRegistry) driverLocked(id kernel.UUID) (*driver.Driver, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, id)
	}
	return d, nil
}

// tryAssignLocked hands queued batches to drivers until the queue is empty or nobody
// can take the head. With preferred set only that driver is considered.
func (r *DriverRegistry) tryAssignLocked(preferred *driver.Driver) []events.Event {
	var evts []events.Event
	for r.queue.Len() > 0 {
		head := r.queue.Peek()
		now := r.clock.Now()

		d, err := r.dispatcher.Dispatch(head, r.drivers, preferred, now)
		if err != nil {
			// services.ErrDriverNotFound: the batch stays queued.
			break
		}
		r.queue.Pop()
		evts = append(evts, r.assignmentEvents(head, d, now)...)
	}
	return evts
}

// assignmentEvents moves the batch's orders to Dispatched and describes the assignment.
func (r *DriverRegistry) assignmentEvents(b *batch.Batch, d *driver.Driver, at time.Time) []events.Event {
	evts := []events.Event{events.NewBatchAssigned(b, d)}
	for _, e := range r.store.Advance(b.OrderIDs(), order.Batched, order.Dispatched, at) {
		evts = append(evts, e)
	}
	return evts
}
