package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	jobs    []job
	started []job
}

// NewJobManager creates a manager for the batch formation sweep and the queue report.
// A nil report job is skipped.
func NewJobManager(batchFormation *BatchFormationJob, queueReport *QueueReportJob) *JobManager {
	jm := &JobManager{jobs: []job{batchFormation}}
	if queueReport != nil {
		jm.jobs = append(jm.jobs, queueReport)
	}
	return jm
}

// StartAll starts every job. If one fails, the ones already running are stopped.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %T: %w", j, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the running jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
