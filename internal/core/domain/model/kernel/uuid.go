package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a zero-value UUID is validated.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// Reference prefixes used when rendering identifiers for people.
const (
	OrderRefPrefix  = "P"
	DriverRefPrefix = "R"
	BatchRefPrefix  = "T"
)

// UUID identifies orders, batches and drivers. It wraps github.com/google/uuid;
// the zero value is invalid.
//
// UUID is immutable and comparable, so it can be used as a map key.
//
// Example:
//
//	id := kernel.NewUUID()
//	fmt.Println(id.ShortRef(kernel.OrderRefPrefix)) // e.g. "P-3FA9B2C1"
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less representations.
//
// Example:
//
//	id, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return fmt.Errorf("invalid driver id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// ShortRef renders the identifier the way customers and drivers see it: the prefix,
// a dash and the leading hex digits in upper case. Orders and batches use eight digits,
// drivers six.
//
// Example:
//
//	id.ShortRef(kernel.OrderRefPrefix)  // "P-3FA9B2C1"
//	id.ShortRef(kernel.DriverRefPrefix) // "R-3FA9B2"
func (u UUID) ShortRef(prefix string) string {
	digits := 8
	if prefix == DriverRefPrefix {
		digits = 6
	}
	hex := strings.ReplaceAll(u.id.String(), "-", "")
	return prefix + "-" + strings.ToUpper(hex[:digits])
}

// Bytes returns the wrapped uuid.UUID, for adapters that persist the binary form.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
