package queries

import (
	"context"

	"podowl/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetJobQueryHandler reads a single job with its items.
type GetJobQueryHandler struct {
	db *gorm.DB
}

func NewGetJobQueryHandler(db *gorm.DB) GetJobQueryHandler {
	return GetJobQueryHandler{db: db}
}

// Handle tries the reference as a job id first and falls back to the most
// recent job with that consignment number. Returns errs.ErrObjectNotFound
// when neither matches.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (JobView, error) {
	if err := query.Validate(); err != nil {
		return JobView{}, err
	}

	if id, err := uuid.Parse(query.Reference()); err == nil {
		jobs, err := scanJobs(ctx, h.db, selectJobColumns+`
			WHERE id = ?
		`, id)
		if err != nil {
			return JobView{}, err
		}
		if len(jobs) > 0 {
			return jobs[0], nil
		}
	}

	jobs, err := scanJobs(ctx, h.db, selectJobColumns+`
		WHERE consignment_number = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, query.Reference())
	if err != nil {
		return JobView{}, err
	}
	if len(jobs) == 0 {
		return JobView{}, errs.NewObjectNotFoundError("job", query.Reference())
	}

	return jobs[0], nil
}
