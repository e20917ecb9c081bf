package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ItemRequest is one line item of a submitted order.
type ItemRequest struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

// SubmitOrderRequest is a cart confirmed by the ordering flow.
type SubmitOrderRequest struct {
	CustomerID string
	Items      []ItemRequest
	// Total is checked against the items when non-zero.
	Total float64
	Lat   float64
	Lon   float64
	// ConfirmationCode is generated when empty.
	ConfirmationCode string
	// SequenceKey overrides the configured sequencing key for this order.
	SequenceKey *float64
}

// Config wires a Coordinator. Zero fields fall back to defaults.
type Config struct {
	Classifier zone.Classifier
	Policy     services.BatchPolicy
	Key        batch.KeyFunc
	Clock      ports.Clock
	Publisher  ports.EventPublisher
	Logger     *slog.Logger
}

// Coordinator owns every piece of dispatch state and exposes the operations the
// outside world drives: order submission, driver registration and driver status
// updates, plus the periodic age sweep.
//
// Coordinator is safe for concurrent use.
type Coordinator struct {
	classifier zone.Classifier
	former     batchFormer
	clock      ports.Clock
	publisher  ports.EventPublisher
	logger     *slog.Logger

	store    *OrderStore
	zones    map[zone.Zone]*ZoneQueue
	registry *DriverRegistry
}

// NewCoordinator creates a Coordinator with empty queues and registries.
//
// Defaults:
//   - Classifier: zone.DefaultClassifier
//   - Policy: services.DefaultBatchPolicy
//   - Key: distance from the hub, overridden per order by a supplied sequence key
//   - Clock: SystemClock
//   - Publisher: none, events are dropped
//   - Logger: slog.Default
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Classifier.Hub().Validate() != nil {
		cfg.Classifier = zone.DefaultClassifier()
	}
	if cfg.Policy.MaxBatchSize() == 0 {
		cfg.Policy = services.DefaultBatchPolicy()
	}
	if cfg.Key == nil {
		cfg.Key = batch.DistanceFromHub(cfg.Classifier.Hub())
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	store := NewOrderStore()
	zones := make(map[zone.Zone]*ZoneQueue, len(zone.All()))
	for _, z := range zone.All() {
		zones[z] = NewZoneQueue(z)
	}

	return &Coordinator{
		classifier: cfg.Classifier,
		former: batchFormer{
			policy: cfg.Policy,
			key:    batch.PreferSupplied(cfg.Key),
			store:  store,
		},
		clock:     cfg.Clock,
		publisher: cfg.Publisher,
		logger:    cfg.Logger.With("component", "dispatch"),
		store:     store,
		zones:     zones,
		registry:  NewDriverRegistry(store, cfg.Clock, cfg.Classifier.Hub()),
	}
}

// Policy returns the active batch policy.
func (c *Coordinator) Policy() services.BatchPolicy {
	return c.former.policy
}

// Hub returns the dispatch hub.
func (c *Coordinator) Hub() kernel.Location {
	return c.classifier.Hub()
}

// SubmitOrder registers a confirmed order, queues it in its zone and, if that fills
// the zone, forms a batch and tries to dispatch it, all before returning.
//
// Returns a copy of the order as it stands after any batching or dispatch.
func (c *Coordinator) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*order.Order, error) {
	items := make([]order.Item, 0, len(req.Items))
	var itemErrs []error
	for i, it := range req.Items {
		item, err := order.NewItem(it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}
	z := c.classifier.Classify(loc)
	q := c.zones[z]

	q.mu.Lock()
	now := c.clock.Now()
	o, err := order.NewOrder(order.Params{
		ID:               kernel.NewUUID(),
		CustomerID:       req.CustomerID,
		Items:            items,
		Total:            req.Total,
		Location:         loc,
		Zone:             z,
		ConfirmationCode: req.ConfirmationCode,
		SequenceKey:      req.SequenceKey,
		ConfirmedAt:      now,
	})
	if err == nil {
		err = c.store.Register(o)
	}
	if err != nil {
		q.mu.Unlock()
		return nil, err
	}
	q.enqueueLocked(o)
	depth := q.lenLocked()
	formed, evts, formErr := c.formAndQueueLocked(q, now)
	q.mu.Unlock()

	c.logger.InfoContext(ctx, "order registered",
		"order", o.Ref(), "zone", z.String(), "queue_depth", depth, "total", o.Total())
	c.logFormed(ctx, formed)
	c.publish(ctx, evts)
	if formErr != nil {
		c.logger.ErrorContext(ctx, "batch formation failed", "zone", z.String(), "error", formErr)
	}

	return c.store.Get(o.ID())
}

// RegisterDriver adds a driver, or returns the existing one for contact. A new driver
// receives the head of the dispatch queue within this call when there is one.
func (c *Coordinator) RegisterDriver(ctx context.Context, name, contact string) (*driver.Driver, bool, error) {
	d, created, evts, err := c.registry.Register(name, contact)
	if err != nil {
		return nil, false, err
	}

	if created {
		c.logger.InfoContext(ctx, "driver registered", "driver", d.Ref(), "name", d.Name())
	}
	c.publish(ctx, evts)
	return d, created, nil
}

// DriverBecameAvailable offers the dispatch queue to a driver that reconnected.
// It does nothing for a busy driver.
func (c *Coordinator) DriverBecameAvailable(ctx context.Context, driverID kernel.UUID) (*driver.Driver, error) {
	d, evts, err := c.registry.Available(driverID)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, evts)
	return d, nil
}

// DriverCompletedBatch marks the driver's current batch delivered and releases the
// driver to its next reserved batch or to the dispatch queue.
func (c *Coordinator) DriverCompletedBatch(ctx context.Context, driverID kernel.UUID) (*driver.Driver, error) {
	d, evts, err := c.registry.Complete(driverID)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "batch completed",
		"driver", d.Ref(), "orders_delivered", d.OrdersDelivered(), "distance_km", d.DistanceKm())
	c.publish(ctx, evts)
	return d, nil
}

// ReserveNextBatch lets a busy driver claim the head of the dispatch queue as a
// follow-up. It returns nil when the queue is empty.
func (c *Coordinator) ReserveNextBatch(ctx context.Context, driverID kernel.UUID) (*batch.Batch, error) {
	b, evts, err := c.registry.Reserve(driverID)
	if err != nil {
		return nil, err
	}
	if b != nil {
		c.logger.InfoContext(ctx, "batch reserved", "batch", b.Ref(), "driver_id", driverID.String())
	}
	c.publish(ctx, evts)
	return b, nil
}

// CancelOrder cancels an order. A pending order also leaves its zone queue; a batched
// or dispatched order keeps its place in the frozen batch and is skipped at delivery.
//
// Returns an error matching order.ErrInvalidTransition for delivered or cancelled orders.
func (c *Coordinator) CancelOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	current, err := c.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	q := c.zones[current.Zone()]

	q.mu.Lock()
	change, err := c.store.Transition(orderID, order.Cancelled, c.clock.Now())
	removed := false
	if err == nil {
		removed = q.removeLocked(orderID)
	}
	q.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "order cancelled",
		"order", change.OrderRef, "previous", change.Previous.String(), "removed_from_queue", removed)
	c.publish(ctx, []events.Event{change})
	return c.store.Get(orderID)
}

// FormDueBatches runs the batch policy over every zone. It is the periodic tick that
// lets the age trigger fire without new arrivals, and returns how many batches formed.
func (c *Coordinator) FormDueBatches(ctx context.Context) (int, error) {
	var (
		total int
		errs  []error
	)

	for _, z := range zone.All() {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		q := c.zones[z]
		q.mu.Lock()
		formed, evts, err := c.formAndQueueLocked(q, c.clock.Now())
		q.mu.Unlock()

		total += len(formed)
		c.logFormed(ctx, formed)
		c.publish(ctx, evts)
		if err != nil {
			errs = append(errs, fmt.Errorf("zone %s: %w", z, err))
		}
	}

	return total, errors.Join(errs...)
}

// Order returns a copy of one order.
func (c *Coordinator) Order(id kernel.UUID) (*order.Order, error) {
	return c.store.Get(id)
}

// Orders returns copies of the orders in registration order, optionally filtered by status.
func (c *Coordinator) Orders(statuses ...order.Status) []*order.Order {
	return c.store.List(statuses...)
}

// Driver returns a copy of one driver.
func (c *Coordinator) Driver(id kernel.UUID) (*driver.Driver, error) {
	return c.registry.Driver(id)
}

// Drivers returns copies of all drivers in registration order.
func (c *Coordinator) Drivers() []*driver.Driver {
	return c.registry.Drivers()
}

// Batch returns a copy of a formed batch.
func (c *Coordinator) Batch(id kernel.UUID) (*batch.Batch, error) {
	return c.registry.Batch(id)
}

// PendingBatches returns the dispatch queue, head first.
func (c *Coordinator) PendingBatches() []*batch.Batch {
	return c.registry.Pending()
}

// ZoneDepths returns how many orders wait in each zone queue.
func (c *Coordinator) ZoneDepths() map[zone.Zone]int {
	depths := make(map[zone.Zone]int, len(c.zones))
	for z, q := range c.zones {
		depths[z] = q.Len()
	}
	return depths
}

// ZoneOrders returns the ids queued in z, oldest first.
func (c *Coordinator) ZoneOrders(z zone.Zone) ([]kernel.UUID, error) {
	q, ok := c.zones[z]
	if !ok {
		return nil, z.Validate()
	}
	return q.OrderIDs(), nil
}

// formAndQueueLocked forms what is due in q and pushes each batch to the dispatch
// queue while q.mu is still held, so a zone's batches keep their formation order.
func (c *Coordinator) formAndQueueLocked(q *ZoneQueue, now time.Time) ([]*batch.Batch, []events.Event, error) {
	formed, evts, err := c.former.formDueLocked(q, now)
	for _, b := range formed {
		evts = append(evts, c.registry.Enqueue(b)...)
	}
	return formed, evts, err
}

func (c *Coordinator) logFormed(ctx context.Context, formed []*batch.Batch) {
	for _, b := range formed {
		c.logger.InfoContext(ctx, "batch formed",
			"batch", b.Ref(), "zone", b.Zone().String(), "size", b.Size(), "trigger", b.Trigger().String())
	}
}

func (c *Coordinator) publish(ctx context.Context, evts []events.Event) {
	for _, e := range evts {
		if assigned, ok := e.(events.BatchAssigned); ok {
			c.logger.InfoContext(ctx, "batch assigned",
				"batch", assigned.BatchRef, "driver", assigned.DriverRef, "stops", len(assigned.Stops))
		}
		if c.publisher == nil {
			continue
		}
		if err := c.publisher.Publish(ctx, e); err != nil {
			c.logger.ErrorContext(ctx, "failed to publish event", "event", e.Name(), "error", err)
		}
	}
}
