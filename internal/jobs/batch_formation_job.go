package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultBatchFormationSchedule runs the sweep every second.
const DefaultBatchFormationSchedule = "* * * * * *"

type formDueBatchesHandler interface {
	Handle(ctx context.Context, cmd commands.FormDueBatchesCommand) (int, error)
}

// BatchFormationJob periodically forms batches for zones whose oldest order has waited
// past the batch policy's limit.
type BatchFormationJob struct {
	handler  formDueBatchesHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBatchFormationJob creates the job. An empty schedule means every second.
func NewBatchFormationJob(handler formDueBatchesHandler, schedule string, logger *slog.Logger) *BatchFormationJob {
	if schedule == "" {
		schedule = DefaultBatchFormationSchedule
	}
	return &BatchFormationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "batch_formation_job"),
	}
}

// Start schedules the sweep. It fails on an invalid cron expression.
func (j *BatchFormationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		formed, err := j.handler.Handle(ctx, commands.NewFormDueBatchesCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Batch formation job failed", "error", err)
		}
		if formed > 0 {
			j.logger.InfoContext(ctx, "Overdue orders batched", "batches", formed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch formation job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *BatchFormationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Batch formation job stopped")
}
