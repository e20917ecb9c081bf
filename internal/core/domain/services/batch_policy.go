package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultMaxBatchSize is the reference size trigger.
	DefaultMaxBatchSize = 7
	// DefaultMaxWait is the reference age trigger.
	DefaultMaxWait = 45 * time.Minute

	// MaxBatchSizeLimit bounds configured batch sizes.
	MaxBatchSizeLimit = 50
)

// Decision is the outcome of evaluating a zone queue.
type Decision struct {
	// Trigger is batch.NoTrigger when nothing should be drained.
	Trigger batch.Trigger
	// Take is how many of the oldest orders to drain.
	Take int
}

// BatchPolicy holds the size and age triggers.
//
// Rules, in priority order:
//  1. queue length >= MaxBatchSize drains exactly MaxBatchSize orders
//  2. the oldest order waited at least MaxWait drains up to MaxBatchSize orders
//
// An empty queue never forms a batch.
type BatchPolicy struct {
	maxBatchSize int
	maxWait      time.Duration
}

// NewBatchPolicy validates the thresholds.
//
// Parameters:
//   - maxBatchSize: within [1..MaxBatchSizeLimit]
//   - maxWait: positive duration
func NewBatchPolicy(maxBatchSize int, maxWait time.Duration) (BatchPolicy, error) {
	var err error
	if maxBatchSize < 1 || maxBatchSize > MaxBatchSizeLimit {
		err = errs.NewValueIsOutOfRangeError("max batch size", maxBatchSize, 1, MaxBatchSizeLimit)
	}
	if maxWait <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("max wait must be positive"))
	}
	if err != nil {
		return BatchPolicy{}, err
	}
	return BatchPolicy{maxBatchSize: maxBatchSize, maxWait: maxWait}, nil
}

// DefaultBatchPolicy returns the reference policy: 7 orders or 45 minutes.
func DefaultBatchPolicy() BatchPolicy {
	return BatchPolicy{maxBatchSize: DefaultMaxBatchSize, maxWait: DefaultMaxWait}
}

// MaxBatchSize returns the size trigger.
func (p BatchPolicy) MaxBatchSize() int {
	return p.maxBatchSize
}

// MaxWait returns the age trigger.
func (p BatchPolicy) MaxWait() time.Duration {
	return p.maxWait
}

// Evaluate decides what to drain from a queue of length queued whose oldest order
// was confirmed at oldest.
func (p BatchPolicy) Evaluate(queued int, oldest, now time.Time) Decision {
	if queued <= 0 {
		return Decision{Trigger: batch.NoTrigger}
	}
	if queued >= p.maxBatchSize {
		return Decision{Trigger: batch.SizeTrigger, Take: p.maxBatchSize}
	}
	if now.Sub(oldest) >= p.maxWait {
		return Decision{Trigger: batch.AgeTrigger, Take: min(queued, p.maxBatchSize)}
	}
	return Decision{Trigger: batch.NoTrigger}
}
