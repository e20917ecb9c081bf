// Package order implements the Order aggregate: one confirmed customer purchase
// delivered to a single location.
//
// The package includes:
//   - Order: identity, line items, derived total, location, zone and lifecycle status
//   - Item: a validated line item
//   - Status: the lifecycle state machine
//
// Key business rules:
//   - the zone is fixed when the order is created and never recomputed
//   - the total is derived from the line items; a caller-supplied total must agree with it
//   - status moves Pending -> Batched -> Dispatched -> Delivered, and any non-terminal
//     status may move to Cancelled. Every other change fails with ErrInvalidTransition
package order
