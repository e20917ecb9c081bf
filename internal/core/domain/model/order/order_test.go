package order_test

import (
	"regexp"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams(t *testing.T) order.Params {
	t.Helper()

	pizza, err := order.NewItem("pizza-muzza", 2, 320)
	require.NoError(t, err)
	soda, err := order.NewItem("soda", 1, 95.5)
	require.NoError(t, err)

	return order.Params{
		ID:          kernel.NewUUID(),
		CustomerID:  "59899123456",
		Items:       []order.Item{pizza, soda},
		Location:    kernel.MustNewLocation(-31.39, -57.95),
		Zone:        zone.SE,
		ConfirmedAt: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with derived total", func(t *testing.T) {
		p := validParams(t)

		o, err := order.NewOrder(p)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(p.ID))
		assert.Equal(t, "59899123456", o.CustomerID())
		assert.Len(t, o.Items(), 2)
		assert.InDelta(t, 735.5, o.Total(), 1e-9)
		assert.Equal(t, zone.SE, o.Zone())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, p.ConfirmedAt, o.ConfirmedAt())
		assert.Equal(t, p.ConfirmedAt, o.UpdatedAt())
		assert.Equal(t, p.ID.ShortRef("P"), o.Ref())
		_, ok := o.SequenceKey()
		assert.False(t, ok)
	})

	t.Run("should accept a matching supplied total", func(t *testing.T) {
		p := validParams(t)
		p.Total = 735.504

		o, err := order.NewOrder(p)

		require.NoError(t, err)
		assert.InDelta(t, 735.5, o.Total(), 1e-9)
	})

	t.Run("should reject a mismatching supplied total", func(t *testing.T) {
		p := validParams(t)
		p.Total = 700

		o, err := order.NewOrder(p)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "700.00 does not match items total 735.50")
	})

	t.Run("should keep the supplied confirmation code", func(t *testing.T) {
		p := validParams(t)
		p.ConfirmationCode = " X7K2QP "

		o, err := order.NewOrder(p)

		require.NoError(t, err)
		assert.Equal(t, "X7K2QP", o.ConfirmationCode())
	})

	t.Run("should generate a confirmation code when none is supplied", func(t *testing.T) {
		o, err := order.NewOrder(validParams(t))

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), o.ConfirmationCode())
	})

	t.Run("should copy the supplied sequence key", func(t *testing.T) {
		p := validParams(t)
		key := 40.0
		p.SequenceKey = &key

		o, err := order.NewOrder(p)
		key = 99

		require.NoError(t, err)
		got, ok := o.SequenceKey()
		assert.True(t, ok)
		assert.InDelta(t, 40.0, got, 0)
	})

	t.Run("should join every violation", func(t *testing.T) {
		o, err := order.NewOrder(order.Params{})

		require.Error(t, err)
		assert.Nil(t, o)
		for _, msg := range []string{"UUID must be created", "customer id", "items", "location must be created", "zone", "confirmation timestamp"} {
			assert.Contains(t, err.Error(), msg)
		}
	})

	t.Run("should reject zero value items", func(t *testing.T) {
		p := validParams(t)
		p.Items = []order.Item{{}}

		_, err := order.NewOrder(p)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Transition(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o, err := order.NewOrder(validParams(t))
		require.NoError(t, err)
		at := o.ConfirmedAt().Add(time.Minute)

		for _, next := range []order.Status{order.Batched, order.Dispatched, order.Delivered} {
			prev := o.Status()
			got, err := o.Transition(next, at)

			require.NoError(t, err)
			assert.Equal(t, prev, got)
			assert.Equal(t, next, o.Status())
		}
		assert.Equal(t, at, o.UpdatedAt())
	})

	t.Run("should leave the order unchanged on invalid transition", func(t *testing.T) {
		o, err := order.NewOrder(validParams(t))
		require.NoError(t, err)

		prev, err := o.Transition(order.Delivered, time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, prev)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Clone(t *testing.T) {
	o, err := order.NewOrder(validParams(t))
	require.NoError(t, err)

	c := o.Clone()
	_, err = o.Transition(order.Batched, time.Now())
	require.NoError(t, err)

	assert.Equal(t, order.Pending, c.Status())
	assert.True(t, c.IsEqual(o))
	require.NoError(t, c.Validate())
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		item, err := order.NewItem("empanada", 6, 45)

		require.NoError(t, err)
		assert.Equal(t, "empanada", item.ProductID())
		assert.Equal(t, 6, item.Quantity())
		assert.InDelta(t, 45.0, item.UnitPrice(), 0)
		assert.InDelta(t, 270.0, item.Subtotal(), 0)
	})

	t.Run("should allow free items", func(t *testing.T) {
		_, err := order.NewItem("napkins", 1, 0)

		require.NoError(t, err)
	})

	t.Run("should reject invalid fields", func(t *testing.T) {
		_, err := order.NewItem(" ", 0, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "product id")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
		assert.Contains(t, err.Error(), "-1.00 is negative")
	})
}

func TestNewConfirmationCode(t *testing.T) {
	seen := map[string]struct{}{}
	for range 50 {
		code := order.NewConfirmationCode()
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
