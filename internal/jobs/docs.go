// Package jobs runs the dispatch service's scheduled work on github.com/robfig/cron/v3
// with a seconds-enabled parser.
//
// # Jobs
//
//  1. BatchFormationJob sweeps every zone queue and forms batches for orders that have
//     waited past the batch policy's limit. Without it the age trigger only fires when a
//     new order reaches the zone.
//  2. QueueReportJob logs zone queue depths and the dispatch queue length.
//
// # Usage
//
//	formation := jobs.NewBatchFormationJob(formDueBatchesHandler, cfg.BatchFormationSchedule, logger)
//	report := jobs.NewQueueReportJob(zoneDepthsHandler, pendingBatchesHandler, "", logger)
//	manager := jobs.NewJobManager(formation, report)
//	if err := manager.StartAll(); err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.StopAll()
//
// Sweeps of the formation job never overlap: a tick that arrives while the previous
// sweep is still running is skipped.
package jobs
