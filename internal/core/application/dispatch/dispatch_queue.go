package dispatch

import (
	"dispatch/internal/core/domain/model/batch"
)

// DispatchQueue is the global FIFO of formed batches without a driver. Batches of
// different zones interleave in formation order.
//
// DispatchQueue has no lock of its own: the DriverRegistry owns it and guards both
// under one mutex.
type DispatchQueue struct {
	batches []*batch.Batch
}

// NewDispatchQueue creates an empty queue.
func NewDispatchQueue() *DispatchQueue {
	return &DispatchQueue{}
}

// Push appends b.
func (q *DispatchQueue) Push(b *batch.Batch) {
	q.batches = append(q.batches, b)
}

// Peek returns the head without removing it, or nil.
func (q *DispatchQueue) Peek() *batch.Batch {
	if len(q.batches) == 0 {
		return nil
	}
	return q.batches[0]
}

// Pop removes and returns the head, or nil.
func (q *DispatchQueue) Pop() *batch.Batch {
	if len(q.batches) == 0 {
		return nil
	}
	head := q.batches[0]
	q.batches[0] = nil
	q.batches = q.batches[1:]
	return head
}

// Len returns the number of queued batches.
func (q *DispatchQueue) Len() int {
	return len(q.batches)
}

// Snapshot returns copies of the queued batches, head first.
func (q *DispatchQueue) Snapshot() []*batch.Batch {
	out := make([]*batch.Batch, len(q.batches))
	for i, b := range q.batches {
		out[i] = b.Clone()
	}
	return out
}
