package commands

import (
	"context"
	"fmt"
	"log/slog"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/services"
)

type notifyFunc func(ctx context.Context, j *job.Job) (services.DispatchReport, error)

// notify runs after commit. The job is already stored, so a dispatch error
// is logged and swallowed. Sends outlive the caller's context; the SMS
// client's own timeout bounds each of them.
func notify(ctx context.Context, logger *slog.Logger, j *job.Job, fn notifyFunc) {
	ctx = context.WithoutCancel(ctx)
	report, err := fn(ctx, j)
	if err != nil {
		logger.ErrorContext(ctx, "notification dispatch failed",
			slog.String("job_id", j.ID().String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if report.Failed() > 0 {
		logger.WarnContext(ctx, "some notifications were not sent",
			slog.String("job_id", j.ID().String()),
			slog.String("event", report.Event.String()),
			slog.Int("failed", report.Failed()),
		)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func wrapField(field string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", field, err)
}
