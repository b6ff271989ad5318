// Package errs provides standardized error types for the order lifecycle engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two families of errors live here:
//
// Validation errors, used by constructors and value objects:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//
// Outcome errors, the caller-visible results of lifecycle operations:
//   - ObjectNotFoundError: an order or rider cannot be found
//   - ForbiddenError: an authorization denial with a structured reason
//   - InvalidTransitionError: a status edge not in the transition table
//   - GuardFailedError: an edge guard that was not met
//   - RiderUnavailableError: an assignment against a rider who cannot accept
//   - HasActiveOrdersError: an availability flip blocked by undelivered orders
//   - ConflictError: a lost compare-and-set race (safe to retry)
//   - StorageUnavailableError: a persistence I/O failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() for formatting and Unwrap() for errors.Is classification
//   - Code() returning a stable reason code distinct from the message,
//     so front ends can localize and branch without string matching
package errs
