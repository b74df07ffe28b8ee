// Package errs provides the error taxonomy shared by every layer of the ordering service.
//
// Each error kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) usable with errors.Is
//   - a struct type carrying the details of the failure
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() for classification
//
// The kinds map onto the failure classes of the ordering flow:
//   - validation (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError):
//     rejected before any write, no partial state
//   - ObjectNotFoundError: the addressed row does not exist
//   - AuthorizationError: the caller is unauthenticated or lacks the staff role
//   - ConflictError: a uniqueness constraint was hit (tracking token, subscriber email)
//   - DependencyFailureError: the store, the payment processor or another collaborator failed
package errs
