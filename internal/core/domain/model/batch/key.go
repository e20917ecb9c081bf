package batch

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// KeyFunc computes the scalar an order is sequenced by inside its batch.
type KeyFunc func(o *order.Order) float64

// Names accepted by NewKeyFunc.
const (
	KeyDistance = "distance"
	KeyTotal    = "total"
)

// DistanceFromHub keys orders by straight-line kilometres from hub.
func DistanceFromHub(hub kernel.Location) KeyFunc {
	return func(o *order.Order) float64 {
		d, err := hub.DistanceTo(o.Location())
		if err != nil {
			return 0
		}
		return d
	}
}

// OrderTotal keys orders by their monetary total.
func OrderTotal() KeyFunc {
	return func(o *order.Order) float64 {
		return o.Total()
	}
}

// PreferSupplied uses the order's own sequence key when the caller gave one and
// falls back otherwise.
func PreferSupplied(fallback KeyFunc) KeyFunc {
	return func(o *order.Order) float64 {
		if key, ok := o.SequenceKey(); ok {
			return key
		}
		return fallback(o)
	}
}

// NewKeyFunc resolves a configured strategy name. An empty name selects distance.
func NewKeyFunc(name string, hub kernel.Location) (KeyFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KeyDistance:
		if err := hub.Validate(); err != nil {
			return nil, err
		}
		return DistanceFromHub(hub), nil
	case KeyTotal:
		return OrderTotal(), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"sequence key",
			fmt.Errorf("%q is not one of %q, %q", name, KeyDistance, KeyTotal),
		)
	}
}
