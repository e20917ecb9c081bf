package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrCustomerIDIsRequired = errs.NewValueIsRequiredError("customer id")
	ErrItemsAreRequired     = errs.NewValueIsRequiredError("items")
)

// Item is one cart line of a SubmitOrderCommand.
type Item struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

// SubmitOrderCommand carries a cart confirmed by the ordering flow.
//
// Example:
//
//	loc, _ := kernel.NewLocation(-31.39, -57.95)
//	cmd, err := NewSubmitOrderCommand("customer-42", []Item{{"margherita", 2, 350}}, loc)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd.WithConfirmationCode("K7Q2ZD"))
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customerID       string
	items            []Item
	location         kernel.Location
	total            float64
	confirmationCode string
	sequenceKey      *float64

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates the customer, the items and the delivery location.
// Item contents are validated again when the order is built.
func NewSubmitOrderCommand(customerID string, items []Item, location kernel.Location) (SubmitOrderCommand, error) {
	command := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setItems(items),
		location.Validate(),
	); err != nil {
		return SubmitOrderCommand{}, err
	}
	command.location = location

	return command, nil
}

// WithTotal sets the total the client computed. It must match the items.
func (c SubmitOrderCommand) WithTotal(total float64) SubmitOrderCommand {
	c.total = total
	return c
}

// WithConfirmationCode sets the code the customer will read to the driver.
func (c SubmitOrderCommand) WithConfirmationCode(code string) SubmitOrderCommand {
	c.confirmationCode = strings.TrimSpace(code)
	return c
}

// WithSequenceKey overrides the configured sequencing key for this order.
func (c SubmitOrderCommand) WithSequenceKey(key float64) SubmitOrderCommand {
	c.sequenceKey = &key
	return c
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) CustomerID() string {
	return c.customerID
}

func (c SubmitOrderCommand) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c SubmitOrderCommand) Location() kernel.Location {
	return c.location
}

func (c SubmitOrderCommand) Total() float64 {
	return c.total
}

func (c SubmitOrderCommand) ConfirmationCode() string {
	return c.confirmationCode
}

// SequenceKey returns the per-order key and whether one was set.
func (c SubmitOrderCommand) SequenceKey() (float64, bool) {
	if c.sequenceKey == nil {
		return 0, false
	}
	return *c.sequenceKey, true
}

func (c SubmitOrderCommand) request() dispatch.SubmitOrderRequest {
	items := make([]dispatch.ItemRequest, len(c.items))
	for i, it := range c.items {
		items[i] = dispatch.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return dispatch.SubmitOrderRequest{
		CustomerID:       c.customerID,
		Items:            items,
		Total:            c.total,
		Lat:              c.location.Lat(),
		Lon:              c.location.Lon(),
		ConfirmationCode: c.confirmationCode,
		SequenceKey:      c.sequenceKey,
	}
}

func (c *SubmitOrderCommand) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}
	c.customerID = customerID
	return nil
}

func (c *SubmitOrderCommand) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	c.items = append([]Item(nil), items...)
	return nil
}
