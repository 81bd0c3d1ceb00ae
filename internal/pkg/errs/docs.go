// Package errs provides standardized error types for the livestock application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an object cannot be found
//   - InvalidStateError: an operation is not permitted in the aggregate's current status
//   - InvalidTransitionError: a status change is not in the transition table
//   - PredicateFailedError: an animal did not meet admission criteria
//   - UniqueConflictError: a unique value is already taken
//   - CapacityExceededError: not enough holding capacity left
//   - RejectionsError: a batch failed, with one reason per rejected item
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf classifies any error into one of the kinds reported to callers.
package errs
