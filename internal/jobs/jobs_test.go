package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockFormDueBatchesHandler struct{ mock.Mock }

func (m *MockFormDueBatchesHandler) Handle(ctx context.Context, cmd commands.FormDueBatchesCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockZoneDepthsHandler struct{ mock.Mock }

func (m *MockZoneDepthsHandler) Handle(ctx context.Context, q queries.GetZoneDepthsQuery) ([]queries.ZoneDepth, error) {
	args := m.Called(ctx, q)
	depths, _ := args.Get(0).([]queries.ZoneDepth)
	return depths, args.Error(1)
}

type MockPendingBatchesHandler struct{ mock.Mock }

func (m *MockPendingBatchesHandler) Handle(ctx context.Context, q queries.GetPendingBatchesQuery) ([]queries.BatchView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.BatchView)
	return views, args.Error(1)
}

func TestBatchFormationJob(t *testing.T) {
	t.Run("should sweep on every tick", func(t *testing.T) {
		// Given
		handler := new(MockFormDueBatchesHandler)
		var calls atomic.Int32
		handler.On("Handle", mock.Anything, mock.AnythingOfType("commands.FormDueBatchesCommand")).
			Run(func(mock.Arguments) { calls.Add(1) }).
			Return(1, nil)
		job := jobs.NewBatchFormationJob(handler, "", discard)

		// When
		require.NoError(t, job.Start())
		defer job.Stop()

		// Then
		assert.Eventually(t, func() bool {
			return calls.Load() > 0
		}, 3*time.Second, 50*time.Millisecond)
	})

	t.Run("sweep errors do not stop the job", func(t *testing.T) {
		handler := new(MockFormDueBatchesHandler)
		var calls atomic.Int32
		handler.On("Handle", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { calls.Add(1) }).
			Return(0, errors.New("zone SE: boom"))
		job := jobs.NewBatchFormationJob(handler, "* * * * * *", discard)

		require.NoError(t, job.Start())
		defer job.Stop()

		assert.Eventually(t, func() bool {
			return calls.Load() >= 2
		}, 4*time.Second, 50*time.Millisecond)
	})

	t.Run("should reject an invalid schedule", func(t *testing.T) {
		job := jobs.NewBatchFormationJob(new(MockFormDueBatchesHandler), "every now and then", discard)

		require.Error(t, job.Start())
	})
}

func TestJobManager(t *testing.T) {
	t.Run("should start and stop every job", func(t *testing.T) {
		formation := new(MockFormDueBatchesHandler)
		formation.On("Handle", mock.Anything, mock.Anything).Return(0, nil)
		depths := new(MockZoneDepthsHandler)
		depths.On("Handle", mock.Anything, mock.Anything).Return([]queries.ZoneDepth{{Zone: zone.NW, Depth: 3}}, nil)
		pending := new(MockPendingBatchesHandler)
		var reports atomic.Int32
		pending.On("Handle", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { reports.Add(1) }).
			Return([]queries.BatchView{}, nil)

		manager := jobs.NewJobManager(
			jobs.NewBatchFormationJob(formation, "", discard),
			jobs.NewQueueReportJob(depths, pending, "* * * * * *", discard),
		)

		require.NoError(t, manager.StartAll())
		assert.Eventually(t, func() bool {
			return reports.Load() > 0
		}, 3*time.Second, 50*time.Millisecond)
		manager.StopAll()
	})

	t.Run("a failing job stops the ones already started", func(t *testing.T) {
		formation := new(MockFormDueBatchesHandler)
		formation.On("Handle", mock.Anything, mock.Anything).Return(0, nil)

		manager := jobs.NewJobManager(
			jobs.NewBatchFormationJob(formation, "", discard),
			jobs.NewQueueReportJob(new(MockZoneDepthsHandler), new(MockPendingBatchesHandler), "not a schedule", discard),
		)

		require.Error(t, manager.StartAll())
	})
}
