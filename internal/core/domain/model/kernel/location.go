package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude in degrees.
	MaxLongitude = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable, validated geographic point (latitude, longitude in degrees).
// The zero value is invalid; create instances with NewLocation.
//
// Example:
//
//	hub, err := kernel.NewLocation(-31.3833, -57.9667)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(hub) // Location(-31.383300,-57.966700)
type Location struct { //nolint:recvcheck //pointer receivers for setters only
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location after checking both coordinates.
//
// Parameters:
//   - lat: latitude in degrees, within [MinLatitude..MaxLatitude]
//   - lon: longitude in degrees, within [MinLongitude..MaxLongitude]
//
// Returns:
//   - Location: a valid location
//   - error: every coordinate violation joined with errors.Join
func NewLocation(lat, lon float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLon(lon)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for constants known to be valid. It panics otherwise.
func MustNewLocation(lat, lon float64) Location {
	loc, err := NewLocation(lat, lon)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate reports whether the Location was created via its constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lon returns the longitude in degrees.
func (l Location) Lon() float64 {
	return l.lon
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lon)
}

// IsEqual compares two locations. Both must be valid.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lon == other.lon, nil
}

// DistanceTo returns the great-circle distance in kilometres using the haversine formula.
// It is a straight-line estimate and ignores the road network.
//
// Returns:
//   - float64: distance in km, symmetric and zero for equal points
//   - error: validation error if either location is a zero value
//
// Example:
//
//	d, err := hub.DistanceTo(customer)
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.lat)
	lat2 := toRadians(other.lat)
	dLat := lat2 - lat1
	dLon := toRadians(other.lon - l.lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lon", lon, MinLongitude, MaxLongitude)
	}

	l.lon = lon
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
