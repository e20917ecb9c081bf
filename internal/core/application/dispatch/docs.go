// Package dispatch is the batching and dispatch engine.
//
// A Coordinator owns the order store, one queue per zone, the dispatch queue of formed
// batches and the driver registry. Confirmed orders are classified into a zone and
// queued; a queue is drained into a batch when it reaches the maximum batch size or its
// oldest order has waited long enough. Formed batches are sequenced, queued for dispatch
// in formation order and handed to the first available driver.
//
// Locking:
//   - each zone queue has its own mutex, held from enqueue until the formed batch is in
//     the dispatch queue, so a zone cannot be drained twice and its batches keep their order
//   - one mutex covers the dispatch queue and the driver registry, so assignment is atomic
//   - the order store has its own read/write mutex
//
// Locks are always taken in that order (zone, dispatch, store) and never around I/O.
// Events are collected while locks are held and published after they are released.
package dispatch
