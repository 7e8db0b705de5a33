// Package errs provides standardized error types for the podowl service.
//
// Each error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrStateConflict) with a struct
// carrying the offending parameter and an optional cause. Unwrap returns the
// sentinel, so callers classify failures with errors.Is and read details with
// errors.As:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // 404
//	}
//	if errors.Is(err, errs.ErrStateConflict) {
//	    // 409
//	}
package errs
