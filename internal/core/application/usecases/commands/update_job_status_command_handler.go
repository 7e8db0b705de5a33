package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/core/ports"
	"podowl/internal/pkg/errs"
)

// UpdateJobStatusResult is the state of the job after the update.
type UpdateJobStatusResult struct {
	ID      kernel.UUID
	Status  job.Status
	Updated time.Time
}

// UpdateJobStatusCommandHandler applies a status transition and notifies the
// contacts about it.
//
// Example:
//
//	handler := NewUpdateJobStatusCommandHandler(uowFactory, dispatcher, logger)
//	_, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown reference
//	case errors.Is(err, errs.ErrStateConflict):
//	    // repeated or backward transition
//	}
type UpdateJobStatusCommandHandler struct {
	uowFactory JobUoWFactory
	notifier   Notifier
	now        func() time.Time
	logger     *slog.Logger
}

// NewUpdateJobStatusCommandHandler creates a handler using the wall clock.
func NewUpdateJobStatusCommandHandler(
	uowFactory JobUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) UpdateJobStatusCommandHandler {
	return UpdateJobStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
		logger:     logger.With("component", "UpdateJobStatusCommandHandler"),
	}
}

// Handle loads the job, moves it, persists it and then sends the notifications
// of the new status.
func (h UpdateJobStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateJobStatusCommand,
) (UpdateJobStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateJobStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateJobStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	aggregate, err := findByReference(ctx, repo, cmd.Reference())
	if err != nil {
		return UpdateJobStatusResult{}, err
	}

	if err = aggregate.MoveTo(cmd.Status(), h.now().UTC().Truncate(time.Microsecond), cmd.Signature()); err != nil {
		return UpdateJobStatusResult{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return UpdateJobStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateJobStatusResult{}, err
	}

	h.logger.InfoContext(ctx, "job status updated",
		slog.String("job_id", aggregate.ID().String()),
		slog.String("status", aggregate.Status().String()),
	)

	switch aggregate.Status() {
	case job.Transit:
		notify(ctx, h.logger, aggregate, h.notifier.OnTransit)
	case job.Completed:
		notify(ctx, h.logger, aggregate, h.notifier.OnComplete)
	case job.Unknown, job.Waiting:
	}

	return UpdateJobStatusResult{
		ID:      aggregate.ID(),
		Status:  aggregate.Status(),
		Updated: aggregate.Updated(),
	}, nil
}

// findByReference tries the job id first, then the consignment number.
func findByReference(ctx context.Context, repo ports.JobRepository, reference string) (*job.Job, error) {
	if id, err := kernel.UUIDFromString(reference); err == nil {
		found, getErr := repo.Get(ctx, id)
		if getErr == nil || !errors.Is(getErr, errs.ErrObjectNotFound) {
			return found, getErr
		}
	}
	return repo.GetByConsignmentNumber(ctx, reference)
}
