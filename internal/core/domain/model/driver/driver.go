package driver

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when the display name is blank.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrContactIsRequired is returned when the contact handle is blank.
	ErrContactIsRequired = errs.NewValueIsRequiredError("contact")
	// ErrDriverIsNotConstructed is returned when a Driver was not created through NewDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverIsBusy is returned when a busy driver is handed a batch directly.
	ErrDriverIsBusy = fmt.Errorf("%w: driver is busy", errs.ErrValueIsInvalid)
	// ErrDriverHasNoBatch is returned when an operation needs a current batch and there is none.
	ErrDriverHasNoBatch = fmt.Errorf("%w: driver has no current batch", errs.ErrValueIsInvalid)
)

// Driver is the aggregate root for a delivery agent.
//
// The contact handle is the external identity used to make registration idempotent.
// Batches are referenced by id; the registry that owns the driver owns the batches.
//
// Driver is not safe for concurrent use.
type Driver struct {
	id              kernel.UUID
	name            string
	contact         string
	state           State
	currentBatchID  *kernel.UUID
	pendingBatchIDs []kernel.UUID
	ordersDelivered int
	distanceKm      float64
	registeredAt    time.Time

	guard guard.ConstructorGuard
}

// NewDriver creates an Available driver.
//
// Parameters:
//   - id: unique identifier
//   - name: display name, must not be blank
//   - contact: contact handle, must not be blank
//   - registeredAt: registration time
//
// Example:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", "59899111222", time.Now())
func NewDriver(id kernel.UUID, name, contact string, registeredAt time.Time) (*Driver, error) {
	d := &Driver{
		state:        Available,
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setContact(contact),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// NormalizeContact returns the form contact handles are compared in.
func NormalizeContact(contact string) string {
	return strings.TrimSpace(contact)
}

// Validate ensures the Driver was created through NewDriver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Ref returns the short reference, e.g. "R-AB12CD".
func (d *Driver) Ref() string {
	return d.id.ShortRef(kernel.DriverRefPrefix)
}

// Name returns the display name.
func (d *Driver) Name() string {
	return d.name
}

// Contact returns the contact handle.
func (d *Driver) Contact() string {
	return d.contact
}

// State returns the availability.
func (d *Driver) State() State {
	return d.state
}

// IsAvailable reports whether the driver can take a batch.
func (d *Driver) IsAvailable() bool {
	return d.state == Available
}

// CurrentBatchID returns the batch the driver is delivering, or nil.
func (d *Driver) CurrentBatchID() *kernel.UUID {
	if d.currentBatchID == nil {
		return nil
	}
	id := *d.currentBatchID
	return &id
}

// PendingBatchIDs returns the reserved follow-up batches, oldest first.
func (d *Driver) PendingBatchIDs() []kernel.UUID {
	return slices.Clone(d.pendingBatchIDs)
}

// OrdersDelivered returns the lifetime delivered-orders counter.
func (d *Driver) OrdersDelivered() int {
	return d.ordersDelivered
}

// DistanceKm returns the lifetime distance counter.
func (d *Driver) DistanceKm() float64 {
	return d.distanceKm
}

// RegisteredAt returns the registration time.
func (d *Driver) RegisteredAt() time.Time {
	return d.registeredAt
}

// TakeBatch makes batchID the current batch and the driver Busy.
func (d *Driver) TakeBatch(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if d.state != Available {
		return fmt.Errorf("%w: %s", ErrDriverIsBusy, d.Ref())
	}
	d.currentBatchID = &batchID
	d.state = Busy
	return nil
}

// QueueBatch reserves batchID to start after the current one. Only Busy drivers
// reserve; an Available driver takes the batch directly.
func (d *Driver) QueueBatch(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if d.state != Busy {
		return fmt.Errorf("%w: %s", ErrDriverHasNoBatch, d.Ref())
	}
	d.pendingBatchIDs = append(d.pendingBatchIDs, batchID)
	return nil
}

// Release ends the current batch.
//
// Returns:
//   - kernel.UUID: the finished batch
//   - *kernel.UUID: the reserved batch promoted to current, nil if the driver is now Available
//   - error: ErrDriverHasNoBatch if the driver was not Busy
func (d *Driver) Release() (kernel.UUID, *kernel.UUID, error) {
	if d.state != Busy || d.currentBatchID == nil {
		return kernel.UUID{}, nil, fmt.Errorf("%w: %s", ErrDriverHasNoBatch, d.Ref())
	}

	finished := *d.currentBatchID
	if len(d.pendingBatchIDs) > 0 {
		next := d.pendingBatchIDs[0]
		d.pendingBatchIDs = slices.Delete(d.pendingBatchIDs, 0, 1)
		d.currentBatchID = &next
		return finished, d.CurrentBatchID(), nil
	}

	d.currentBatchID = nil
	d.state = Available
	return finished, nil, nil
}

// RecordDelivery adds to the lifetime counters. Negative values are ignored.
func (d *Driver) RecordDelivery(orders int, km float64) {
	if orders > 0 {
		d.ordersDelivered += orders
	}
	if km > 0 {
		d.distanceKm += km
	}
}

// Clone returns an independent copy.
func (d *Driver) Clone() *Driver {
	c := *d
	c.currentBatchID = d.CurrentBatchID()
	c.pendingBatchIDs = d.PendingBatchIDs()
	return &c
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setContact(contact string) error {
	contact = NormalizeContact(contact)
	if contact == "" {
		return ErrContactIsRequired
	}
	d.contact = contact
	return nil
}
