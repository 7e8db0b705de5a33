package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"podowl/internal/adapters/out/postgres"

	"github.com/robfig/cron/v3"
)

// DefaultConnectivitySchedule runs the check once a minute.
const DefaultConnectivitySchedule = "@every 1m"

const checkTimeout = 10 * time.Second

// ConnectivityChecker probes the job store.
type ConnectivityChecker interface {
	Check(ctx context.Context) error
}

// ConnectivityCheckJob probes the database on a schedule and logs the
// classified outcome. A failing check is reported, never fatal.
type ConnectivityCheckJob struct {
	checker  ConnectivityChecker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	healthy *bool
}

// NewConnectivityCheckJob creates the job. An empty schedule selects
// DefaultConnectivitySchedule.
func NewConnectivityCheckJob(checker ConnectivityChecker, schedule string, logger *slog.Logger) *ConnectivityCheckJob {
	if schedule == "" {
		schedule = DefaultConnectivitySchedule
	}
	return &ConnectivityCheckJob{
		checker:  checker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "connectivity_check_job"),
	}
}

// Start schedules the check.
func (j *ConnectivityCheckJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Connectivity check job started", "schedule", j.schedule)
	return nil
}

// Stop stops the schedule and waits for a running check to finish.
func (j *ConnectivityCheckJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Connectivity check job stopped")
}

// RunOnce performs one check and returns its error. Failures are logged on
// every run; a recovery is logged once.
func (j *ConnectivityCheckJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	err := j.checker.Check(ctx)

	j.mu.Lock()
	wasHealthy := j.healthy
	healthy := err == nil
	j.healthy = &healthy
	j.mu.Unlock()

	if err == nil {
		if wasHealthy == nil || !*wasHealthy {
			j.logger.InfoContext(ctx, "Database is reachable")
		}
		return nil
	}

	attrs := []any{"error", err}
	var connErr *postgres.ConnectivityError
	if errors.As(err, &connErr) {
		attrs = append(attrs, "kind", string(connErr.Kind), "hint", connErr.Hint)
	}
	j.logger.ErrorContext(ctx, "Database connectivity check failed", attrs...)
	return err
}

// Healthy reports the outcome of the last check. ok is false before the first check.
func (j *ConnectivityCheckJob) Healthy() (healthy bool, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.healthy == nil {
		return false, false
	}
	return *j.healthy, true
}
