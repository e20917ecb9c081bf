// Package batch implements the Batch aggregate and the stop sequencer that orders a
// batch's deliveries.
//
// A batch groups orders of a single zone for one driver. Its membership and stop
// order are frozen when it is formed; the only later change is the one-time driver
// assignment. Stops are ordered ascending by a KeyFunc using an array-backed binary
// search tree rebuilt for every batch.
package batch
