package commands

import (
	"errors"

	"restaurant/internal/pkg/errs"
)

// storeError keeps classified errors as they are and reports anything else as
// a failed store call.
func storeError(operation string, err error) error {
	if errs.IsValidation(err) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrDependencyFailure) ||
		errors.Is(err, errs.ErrUnauthenticated) ||
		errors.Is(err, errs.ErrForbidden) {
		return err
	}
	return errs.NewDependencyFailureError("store", operation, err)
}
