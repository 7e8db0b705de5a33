// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and, after a successful commit, notification.
package commands

import (
	"context"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/services"
	"podowl/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// JobUoW manages transactions for job operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.JobRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	JobUoW interface {
		TxManager
		JobRepoFactory
	}

	// JobUoWFactory creates new job unit of work instances.
	JobUoWFactory interface {
		Create() JobUoW
	}
)

// Notifier tells a job's contacts about lifecycle events.
// services.NotificationDispatcher is the production implementation.
type Notifier interface {
	OnWaiting(ctx context.Context, j *job.Job) (services.DispatchReport, error)
	OnTransit(ctx context.Context, j *job.Job) (services.DispatchReport, error)
	OnComplete(ctx context.Context, j *job.Job) (services.DispatchReport, error)
}
