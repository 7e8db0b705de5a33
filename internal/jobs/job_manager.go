package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	connectivityCheckJob *ConnectivityCheckJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(checker ConnectivityChecker, connectivitySchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		connectivityCheckJob: NewConnectivityCheckJob(checker, connectivitySchedule, logger),
	}
}

// StartAll runs the connectivity check once so that the startup log shows
// the state of the database, then starts the schedules.
func (jm *JobManager) StartAll(ctx context.Context) error {
	_ = jm.connectivityCheckJob.RunOnce(ctx)

	if err := jm.connectivityCheckJob.Start(); err != nil {
		return fmt.Errorf("failed to start connectivity check job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.connectivityCheckJob.Stop()
}

// ConnectivityCheck exposes the connectivity job, e.g. for health reporting.
func (jm *JobManager) ConnectivityCheck() *ConnectivityCheckJob {
	return jm.connectivityCheckJob
}
