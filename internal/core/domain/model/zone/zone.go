package zone

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Zone is one of the four quadrants around the hub.
type Zone int

const (
	// Unknown is the zero value and never produced by a Classifier.
	Unknown Zone = iota
	NW
	NE
	SW
	SE
)

func getZoneStrings() map[Zone]string {
	return map[Zone]string{
		Unknown: "Unknown",
		NW:      "NW",
		NE:      "NE",
		SW:      "SW",
		SE:      "SE",
	}
}

// All returns the valid zones in a fixed order.
func All() []Zone {
	return []Zone{NW, NE, SW, SE}
}

// Parse converts a label such as "se" or "SE" into a Zone.
func Parse(s string) (Zone, error) {
	label := strings.ToUpper(strings.TrimSpace(s))
	for _, z := range All() {
		if z.String() == label {
			return z, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("zone", fmt.Errorf("%q is not a zone label", s))
}

func (z Zone) String() string {
	if str, ok := getZoneStrings()[z]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects Unknown and values outside the four labels.
func (z Zone) Validate() error {
	if z < NW || z > SE {
		return errs.NewValueIsInvalidErrorWithCause("zone", fmt.Errorf("%d is not a valid zone", z))
	}
	return nil
}

// IsNorth reports whether the zone lies north of the hub.
func (z Zone) IsNorth() bool {
	return z == NW || z == NE
}

// IsEast reports whether the zone lies east of the hub.
func (z Zone) IsEast() bool {
	return z == NE || z == SE
}
