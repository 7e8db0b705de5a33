package queries

import (
	"errors"
	"strings"

	"podowl/internal/pkg/errs"
	"podowl/internal/pkg/guard"
)

var ErrGetJobQueryIsNotConstructed = errors.New(
	"GetJobQuery must be created via NewGetJobQuery constructor",
)

// GetJobQuery looks one job up by id or consignment number, the same
// reference confirmation links carry.
//
// Example:
//
//	query, err := NewGetJobQuery("CN-100")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetJobQuery struct {
	reference string
	guard     guard.ConstructorGuard
}

func NewGetJobQuery(reference string) (GetJobQuery, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return GetJobQuery{}, errs.NewValueIsRequiredError("reference")
	}
	return GetJobQuery{reference: reference, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

func (q GetJobQuery) Reference() string {
	return q.reference
}
