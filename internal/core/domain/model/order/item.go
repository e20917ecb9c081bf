package order

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Item is one line of an order: a product, how many of it and its unit price.
type Item struct {
	productID string
	quantity  int
	unitPrice float64
}

// NewItem validates and creates a line item.
//
// Parameters:
//   - productID: catalogue identifier, must not be blank
//   - quantity: number of units, must be greater than 0
//   - unitPrice: price per unit, must not be negative
func NewItem(productID string, quantity int, unitPrice float64) (Item, error) {
	var item Item
	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}
	return item, nil
}

// ProductID returns the catalogue identifier.
func (i Item) ProductID() string {
	return i.productID
}

// Quantity returns the number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity × unit price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%.2f is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
