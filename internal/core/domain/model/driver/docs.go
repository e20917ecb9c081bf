// Package driver implements the Driver aggregate: a delivery agent that carries at
// most one batch at a time and may hold reserved follow-up batches.
//
// Key business rules:
//   - a Busy driver has exactly one current batch, an Available driver has none
//   - a follow-up batch can only be reserved by a Busy driver
//   - releasing a driver promotes the oldest reserved batch, if any
//   - lifetime counters are informational and never influence assignment
package driver
