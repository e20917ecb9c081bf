package order

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// TotalTolerance is the largest accepted difference between a supplied total and
// the total derived from the line items.
const TotalTolerance = 0.005

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Params carries everything needed to create an Order.
type Params struct {
	ID         kernel.UUID
	CustomerID string
	Items      []Item
	// Total is optional. Zero means "derive it from the items".
	Total    float64
	Location kernel.Location
	Zone     zone.Zone
	// ConfirmationCode is optional. An empty code is replaced by a generated one.
	ConfirmationCode string
	// SequenceKey is an optional caller-supplied stop ordering key.
	SequenceKey *float64
	ConfirmedAt time.Time
}

// Order is the aggregate root for a confirmed customer purchase.
//
// Order follows these invariants:
//   - id, customer, location and zone are valid and never change
//   - at least one line item; total equals the sum of item subtotals
//   - status only changes through Transition
//
// Order is not safe for concurrent use; the owner serialises access and hands
// out copies made with Clone.
type Order struct {
	id               kernel.UUID
	customerID       string
	items            []Item
	total            float64
	location         kernel.Location
	zone             zone.Zone
	confirmationCode string
	sequenceKey      *float64
	status           Status
	confirmedAt      time.Time
	updatedAt        time.Time

	guard guard.ConstructorGuard
}

// NewOrder validates p and creates a Pending order.
//
// Returns:
//   - *Order: the order if every rule holds
//   - error: all violations joined with errors.Join
//
// Example:
//
//	item, _ := order.NewItem("pizza-muzza", 2, 320)
//	o, err := order.NewOrder(order.Params{
//	    ID:          kernel.NewUUID(),
//	    CustomerID:  "59899123456",
//	    Items:       []order.Item{item},
//	    Location:    loc,
//	    Zone:        classifier.Classify(loc),
//	    ConfirmedAt: time.Now(),
//	})
func NewOrder(p Params) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setItems(p.Items, p.Total),
		o.setLocation(p.Location),
		o.setZone(p.Zone),
		o.setConfirmedAt(p.ConfirmedAt),
	); err != nil {
		return nil, err
	}

	o.confirmationCode = strings.TrimSpace(p.ConfirmationCode)
	if o.confirmationCode == "" {
		o.confirmationCode = NewConfirmationCode()
	}
	if p.SequenceKey != nil {
		key := *p.SequenceKey
		o.sequenceKey = &key
	}
	o.updatedAt = o.confirmedAt

	return o, nil
}

// Validate ensures the Order was created through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Ref returns the short reference shown to customers, e.g. "P-3FA9B2C1".
func (o *Order) Ref() string {
	return o.id.ShortRef(kernel.OrderRefPrefix)
}

// CustomerID returns the customer identifier.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Total returns the derived order total.
func (o *Order) Total() float64 {
	return o.total
}

// Location returns the delivery location.
func (o *Order) Location() kernel.Location {
	return o.location
}

// Zone returns the zone assigned at creation.
func (o *Order) Zone() zone.Zone {
	return o.zone
}

// ConfirmationCode returns the code the customer reads back at hand-over.
func (o *Order) ConfirmationCode() string {
	return o.confirmationCode
}

// SequenceKey returns the caller-supplied ordering key, if any.
func (o *Order) SequenceKey() (float64, bool) {
	if o.sequenceKey == nil {
		return 0, false
	}
	return *o.sequenceKey, true
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// ConfirmedAt returns when the order was confirmed.
func (o *Order) ConfirmedAt() time.Time {
	return o.confirmedAt
}

// UpdatedAt returns when the status last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Transition moves the order to next at time at.
//
// Returns:
//   - Status: the status before the change
//   - error: matching ErrInvalidTransition when the lifecycle forbids the move
func (o *Order) Transition(next Status, at time.Time) (Status, error) {
	prev := o.status
	if err := prev.ValidateTransition(next); err != nil {
		return prev, err
	}
	o.status = next
	o.updatedAt = at
	return prev, nil
}

// Clone returns an independent copy.
func (o *Order) Clone() *Order {
	c := *o
	c.items = slices.Clone(o.items)
	if o.sequenceKey != nil {
		key := *o.sequenceKey
		c.sequenceKey = &key
	}
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customer id")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item, supplied float64) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var total float64
	for _, item := range items {
		if item.productID == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", errors.New("item must be created via NewItem"))
		}
		total += item.Subtotal()
	}
	total = math.Round(total*100) / 100

	if supplied != 0 && math.Abs(supplied-total) > TotalTolerance {
		return errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%.2f does not match items total %.2f", supplied, total),
		)
	}

	o.items = slices.Clone(items)
	o.total = total
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setZone(z zone.Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}
	o.zone = z
	return nil
}

func (o *Order) setConfirmedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("confirmation timestamp")
	}
	o.confirmedAt = at
	return nil
}
