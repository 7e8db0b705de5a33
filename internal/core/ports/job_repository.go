// Package ports defines the contracts between the job domain and the
// infrastructure around it: persistence, transactions and SMS delivery.
package ports

import (
	"context"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates,
// including their ordered item lists.
type JobRepository interface {
	// Add persists a new job. The job must be valid and not already stored.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists status, signature, item and timestamp changes of an existing job.
	// Returns errs.StateConflictError when the stored job already reached the
	// new status or a later one.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job by id. Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetByConsignmentNumber retrieves the most recent job carrying the
	// consignment number, as printed in confirmation links.
	// Returns errs.ObjectNotFoundError when none exists.
	GetByConsignmentNumber(ctx context.Context, consignmentNumber string) (*job.Job, error)
}
