package dispatch

import (
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// batchFormer applies the batch policy to a zone queue and turns what it drains into
// sequenced batches.
type batchFormer struct {
	policy services.BatchPolicy
	key    batch.KeyFunc
	store  *OrderStore
}

// formDueLocked drains q while the policy keeps firing. The caller holds q.mu, which
// makes the drain the serialisation point for concurrent triggers on the same zone.
//
// The batch is formed from a peek before anything is removed, so a failure leaves the
// queue and the order statuses untouched.
func (f batchFormer) formDueLocked(q *ZoneQueue, now time.Time) ([]*batch.Batch, []events.Event, error) {
	var (
		formed []*batch.Batch
		evts   []events.Event
	)

	for {
		decision := f.policy.Evaluate(q.lenLocked(), q.oldestLocked(), now)
		if decision.Trigger == batch.NoTrigger {
			return formed, evts, nil
		}

		candidates := q.peekLocked(decision.Take)
		b, err := batch.Form(kernel.NewUUID(), q.zone, candidates, f.key, f.policy.MaxBatchSize(), decision.Trigger, now)
		if err != nil {
			return formed, evts, err
		}

		drained := q.drainLocked(len(candidates))
		ids := make([]kernel.UUID, len(drained))
		for i, o := range drained {
			ids[i] = o.ID()
		}
		for _, e := range f.store.Advance(ids, order.Pending, order.Batched, now) {
			evts = append(evts, e)
		}
		formed = append(formed, b)
	}
}
