// Package kernel holds the value objects shared by every aggregate of the dispatch domain.
//
// The package includes:
//   - UUID: identity for orders, batches and drivers, with short human-facing references
//   - Location: a validated latitude/longitude pair with haversine distance
//
// Both types are immutable and their zero values fail validation.
package kernel
