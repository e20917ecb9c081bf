package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultQueueReportSchedule logs queue depths once a minute.
const DefaultQueueReportSchedule = "0 * * * * *"

type zoneDepthsHandler interface {
	Handle(ctx context.Context, query queries.GetZoneDepthsQuery) ([]queries.ZoneDepth, error)
}

type pendingBatchesHandler interface {
	Handle(ctx context.Context, query queries.GetPendingBatchesQuery) ([]queries.BatchView, error)
}

// QueueReportJob logs the depth of every zone queue and of the dispatch queue.
type QueueReportJob struct {
	zones    zoneDepthsHandler
	pending  pendingBatchesHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewQueueReportJob(
	zones zoneDepthsHandler,
	pending pendingBatchesHandler,
	schedule string,
	logger *slog.Logger,
) *QueueReportJob {
	if schedule == "" {
		schedule = DefaultQueueReportSchedule
	}
	return &QueueReportJob{
		zones:    zones,
		pending:  pending,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "queue_report_job"),
	}
}

func (j *QueueReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() { j.report(context.Background()) })
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue report job started", "schedule", j.schedule)
	return nil
}

func (j *QueueReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Queue report job stopped")
}

func (j *QueueReportJob) report(ctx context.Context) {
	depths, err := j.zones.Handle(ctx, queries.NewGetZoneDepthsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue report failed", "error", err)
		return
	}
	pending, err := j.pending.Handle(ctx, queries.NewGetPendingBatchesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue report failed", "error", err)
		return
	}

	attrs := make([]any, 0, 2*len(depths)+2)
	for _, d := range depths {
		attrs = append(attrs, "zone_"+d.Zone.String(), d.Depth)
	}
	attrs = append(attrs, "pending_batches", len(pending))
	j.logger.InfoContext(ctx, "Queue depths", attrs...)
}
