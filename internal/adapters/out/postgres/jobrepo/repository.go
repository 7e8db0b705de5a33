package jobrepo

import (
	"context"
	"errors"
	"fmt"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job and its items.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.NewStateConflictErrorWithCause("job "+aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable part of a job: status, signature, updated
// timestamp and item delivery flags. Everything else is immutable.
//
// Statuses only move forward, so the row is written only while its stored
// status is still below the new one. A job another transaction already moved
// to the same status or beyond yields errs.ErrStateConflict.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&JobDTO{}).
		Where("id = ? AND status < ?", dto.ID, dto.Status).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.Updated,
			"signature":  dto.Signature,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleOrMissing(ctx, aggregate)
	}

	for _, it := range dto.Items {
		if err := db.Model(&ItemDTO{}).
			Where("job_id = ? AND position = ?", it.JobID, it.Position).
			Update("delivered", it.Delivered).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.withItems(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByConsignmentNumber retrieves the newest job with the consignment number.
func (r *GormJobRepository) GetByConsignmentNumber(ctx context.Context, consignmentNumber string) (*job.Job, error) {
	if consignmentNumber == "" {
		return nil, errs.NewValueIsRequiredError("consignment number")
	}

	var dto JobDTO
	if err := r.withItems(ctx).
		Where("consignment_number = ?", consignmentNumber).
		Order("created_at DESC").
		Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", consignmentNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// staleOrMissing explains an update that matched no row.
func (r *GormJobRepository) staleOrMissing(ctx context.Context, aggregate *job.Job) error {
	var stored struct{ Status int }
	err := r.db.WithContext(ctx).Model(&JobDTO{}).
		Select("status").
		Where("id = ?", aggregate.ID().Bytes()).
		Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}
	if err != nil {
		return err
	}

	return errs.NewStateConflictError(fmt.Sprintf("job %s is already %s, cannot move to %s",
		aggregate.ID(), job.Status(stored.Status), aggregate.Status()))
}

func (r *GormJobRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
