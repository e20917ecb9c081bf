package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned for a status change the lifecycle does not allow.
// Callers must re-read the current status instead of retrying the same change.
var ErrInvalidTransition = fmt.Errorf("%w: status transition is not allowed", errs.ErrValueIsInvalid)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Batched ──> Dispatched ──> Delivered
//	   │           │            │
//	   └───────────┴────────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Pending orders wait in their zone queue.
	Pending

	// Batched orders belong to a formed batch that no driver holds yet.
	Batched

	// Dispatched orders are on their way with a driver.
	Dispatched

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Batched:    "Batched",
		Dispatched: "Dispatched",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus converts a status name, in any case, into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateTransition checks whether the lifecycle allows moving from s to next
// without performing it.
//
// Returns:
//   - nil if the move is allowed
//   - an error matching ErrInvalidTransition otherwise
func (s Status) ValidateTransition(next Status) error {
	allowed := false
	switch next {
	case Batched:
		allowed = s == Pending
	case Dispatched:
		allowed = s == Batched
	case Delivered:
		allowed = s == Dispatched
	case Cancelled:
		allowed = !s.IsTerminal()
	case Unknown, Pending:
	}

	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return nil
}
