// Package services holds the domain rules that span aggregates.
//
// The package includes:
//   - BatchPolicy: decides when a zone queue must be drained and how many orders to take
//   - BatchDispatcher: picks the driver for a batch and performs the assignment
package services
