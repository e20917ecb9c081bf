package zone

import (
	"dispatch/internal/core/domain/model/kernel"
)

// Coordinates of the original restaurant, used as the hub when none is configured.
const (
	DefaultHubLat = -31.3833
	DefaultHubLon = -57.9667
)

// Classifier maps locations to zones relative to a fixed hub. It is a value type and
// safe for concurrent use.
type Classifier struct {
	hub kernel.Location
}

// NewClassifier creates a Classifier around hub, which must be a valid location.
func NewClassifier(hub kernel.Location) (Classifier, error) {
	if err := hub.Validate(); err != nil {
		return Classifier{}, err
	}
	return Classifier{hub: hub}, nil
}

// DefaultClassifier returns a Classifier around the default hub.
func DefaultClassifier() Classifier {
	return Classifier{hub: kernel.MustNewLocation(DefaultHubLat, DefaultHubLon)}
}

// Hub returns the reference point.
func (c Classifier) Hub() kernel.Location {
	return c.hub
}

// Classify returns the zone of loc. It never fails: the zero Location is
// treated as (0, 0).
//
// Example:
//
//	c := zone.DefaultClassifier()
//	c.Classify(kernel.MustNewLocation(-31.30, -57.90)) // NE
//	c.Classify(kernel.MustNewLocation(-31.3833, -57.90)) // SE, on the hub latitude
func (c Classifier) Classify(loc kernel.Location) Zone {
	north := loc.Lat() > c.hub.Lat()
	east := loc.Lon() > c.hub.Lon()

	switch {
	case north && east:
		return NE
	case north:
		return NW
	case east:
		return SE
	default:
		return SW
	}
}
