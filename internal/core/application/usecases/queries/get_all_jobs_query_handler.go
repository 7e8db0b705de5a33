package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetAllJobsQueryHandler struct {
	db *gorm.DB
}

func NewGetAllJobsQueryHandler(db *gorm.DB) GetAllJobsQueryHandler {
	return GetAllJobsQueryHandler{db: db}
}

// Handle returns all jobs ordered by creation time, newest first. An empty
// table gives an empty, non-nil slice.
func (h GetAllJobsQueryHandler) Handle(ctx context.Context, query GetAllJobsQuery) ([]JobView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanJobs(ctx, h.db, selectJobColumns+`
		ORDER BY created_at DESC, id
	`)
}
