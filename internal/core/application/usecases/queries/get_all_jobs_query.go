package queries

import (
	"errors"

	"podowl/internal/pkg/guard"
)

var ErrGetAllJobsQueryIsNotConstructed = errors.New(
	"GetAllJobsQuery must be created via NewGetAllJobsQuery constructor",
)

// GetAllJobsQuery lists every job, newest first. It backs the jobs list view.
type GetAllJobsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllJobsQuery() GetAllJobsQuery {
	return GetAllJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllJobsQueryIsNotConstructed)
}
