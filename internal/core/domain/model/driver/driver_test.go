package driver_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registered = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

func newDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", "59899111222", registered)
	require.NoError(t, err)
	return d
}

func TestNewDriver(t *testing.T) {
	t.Run("should create an available driver", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := driver.NewDriver(id, " Ana ", " 59899111222 ", registered)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, id, d.ID())
		assert.Equal(t, "Ana", d.Name())
		assert.Equal(t, "59899111222", d.Contact())
		assert.Equal(t, driver.Available, d.State())
		assert.True(t, d.IsAvailable())
		assert.Nil(t, d.CurrentBatchID())
		assert.Empty(t, d.PendingBatchIDs())
		assert.Equal(t, registered, d.RegisteredAt())
		assert.Regexp(t, `^R-[0-9A-F]{6}$`, d.Ref())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.UUID{}, "", " ", registered)

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
		require.ErrorIs(t, err, driver.ErrContactIsRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestDriver_TakeBatch(t *testing.T) {
	t.Run("should become busy", func(t *testing.T) {
		d := newDriver(t)
		batchID := kernel.NewUUID()

		require.NoError(t, d.TakeBatch(batchID))

		assert.Equal(t, driver.Busy, d.State())
		require.NotNil(t, d.CurrentBatchID())
		assert.Equal(t, batchID, *d.CurrentBatchID())
	})

	t.Run("should refuse a second batch", func(t *testing.T) {
		d := newDriver(t)
		first := kernel.NewUUID()
		require.NoError(t, d.TakeBatch(first))

		err := d.TakeBatch(kernel.NewUUID())

		require.ErrorIs(t, err, driver.ErrDriverIsBusy)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, first, *d.CurrentBatchID())
	})

	t.Run("should reject zero batch id", func(t *testing.T) {
		d := newDriver(t)

		require.Error(t, d.TakeBatch(kernel.UUID{}))
		assert.True(t, d.IsAvailable())
	})
}

func TestDriver_Release(t *testing.T) {
	t.Run("should become available without reservations", func(t *testing.T) {
		d := newDriver(t)
		batchID := kernel.NewUUID()
		require.NoError(t, d.TakeBatch(batchID))

		finished, next, err := d.Release()

		require.NoError(t, err)
		assert.Equal(t, batchID, finished)
		assert.Nil(t, next)
		assert.True(t, d.IsAvailable())
		assert.Nil(t, d.CurrentBatchID())
	})

	t.Run("should promote reserved batches in order", func(t *testing.T) {
		d := newDriver(t)
		current, second, third := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, d.TakeBatch(current))
		require.NoError(t, d.QueueBatch(second))
		require.NoError(t, d.QueueBatch(third))

		finished, next, err := d.Release()

		require.NoError(t, err)
		assert.Equal(t, current, finished)
		require.NotNil(t, next)
		assert.Equal(t, second, *next)
		assert.Equal(t, driver.Busy, d.State())
		assert.Equal(t, []kernel.UUID{third}, d.PendingBatchIDs())
	})

	t.Run("should fail when not busy", func(t *testing.T) {
		d := newDriver(t)

		_, _, err := d.Release()

		require.ErrorIs(t, err, driver.ErrDriverHasNoBatch)
	})
}

func TestDriver_QueueBatch(t *testing.T) {
	t.Run("available drivers cannot reserve", func(t *testing.T) {
		d := newDriver(t)

		err := d.QueueBatch(kernel.NewUUID())

		require.ErrorIs(t, err, driver.ErrDriverHasNoBatch)
		assert.Empty(t, d.PendingBatchIDs())
	})
}

func TestDriver_RecordDelivery(t *testing.T) {
	d := newDriver(t)

	d.RecordDelivery(3, 4.5)
	d.RecordDelivery(2, 1.5)
	d.RecordDelivery(-1, -10)

	assert.Equal(t, 5, d.OrdersDelivered())
	assert.InDelta(t, 6.0, d.DistanceKm(), 1e-9)
}

func TestDriver_Clone(t *testing.T) {
	d := newDriver(t)
	require.NoError(t, d.TakeBatch(kernel.NewUUID()))
	require.NoError(t, d.QueueBatch(kernel.NewUUID()))

	c := d.Clone()
	_, _, err := d.Release()
	require.NoError(t, err)

	assert.Len(t, c.PendingBatchIDs(), 1)
	assert.Empty(t, d.PendingBatchIDs())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Available", driver.Available.String())
	assert.Equal(t, "Busy", driver.Busy.String())
	assert.Equal(t, "Unknown", driver.State(7).String())
}
