package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchPolicy_Evaluate(t *testing.T) {
	policy := services.DefaultBatchPolicy()
	now := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		queued  int
		waited  time.Duration
		trigger batch.Trigger
		take    int
	}{
		{name: "empty queue never forms a batch", queued: 0, waited: 10 * time.Hour, trigger: batch.NoTrigger},
		{name: "young small queue waits", queued: 3, waited: 10 * time.Minute, trigger: batch.NoTrigger},
		{name: "size trigger at the threshold", queued: 7, waited: 0, trigger: batch.SizeTrigger, take: 7},
		{name: "size trigger takes exactly the threshold", queued: 12, waited: 0, trigger: batch.SizeTrigger, take: 7},
		{name: "size wins over age", queued: 9, waited: time.Hour, trigger: batch.SizeTrigger, take: 7},
		{name: "age trigger at exactly max wait", queued: 1, waited: 45 * time.Minute, trigger: batch.AgeTrigger, take: 1},
		{name: "age trigger takes everything below the threshold", queued: 6, waited: time.Hour, trigger: batch.AgeTrigger, take: 6},
		{name: "just below max wait", queued: 6, waited: 45*time.Minute - time.Nanosecond, trigger: batch.NoTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When
			d := policy.Evaluate(tt.queued, now.Add(-tt.waited), now)

			// Then
			assert.Equal(t, tt.trigger, d.Trigger)
			assert.Equal(t, tt.take, d.Take)
		})
	}
}

func TestNewBatchPolicy(t *testing.T) {
	t.Run("should accept custom thresholds", func(t *testing.T) {
		p, err := services.NewBatchPolicy(2, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, 2, p.MaxBatchSize())
		assert.Equal(t, time.Minute, p.MaxWait())
		assert.Equal(t, services.Decision{Trigger: batch.SizeTrigger, Take: 2}, p.Evaluate(2, time.Now(), time.Now()))
	})

	t.Run("should reject invalid thresholds", func(t *testing.T) {
		_, err := services.NewBatchPolicy(0, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject oversized batches", func(t *testing.T) {
		_, err := services.NewBatchPolicy(services.MaxBatchSizeLimit+1, time.Minute)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("default policy uses reference values", func(t *testing.T) {
		p := services.DefaultBatchPolicy()

		assert.Equal(t, 7, p.MaxBatchSize())
		assert.Equal(t, 45*time.Minute, p.MaxWait())
	})
}
