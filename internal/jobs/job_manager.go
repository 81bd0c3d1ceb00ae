package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleTransferJob *StaleTransferJob
}

// NewJobManager creates the jobs and registers their metrics on reg.
func NewJobManager(
	staleTransfers StaleTransferFinder,
	staleSchedule string,
	staleAfter time.Duration,
	reg prometheus.Registerer,
	logger *slog.Logger,
) (*JobManager, error) {
	staleJob, err := NewStaleTransferJob(staleTransfers, staleSchedule, staleAfter, reg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stale transfer job: %w", err)
	}
	return &JobManager{staleTransferJob: staleJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.staleTransferJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale transfer job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.staleTransferJob.Stop()
}
