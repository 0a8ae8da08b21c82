// Package errs provides standardized error types for the order engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the engine's error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures on
//     mutating calls; no partial state is committed
//   - ObjectNotFoundError: lookups that matched nothing
//   - InvalidTransitionError: status changes not reachable from the current
//     status; the order is left unchanged
//   - ConcurrencyConflictError: a competing mutation on the same order won
//     the race; recoverable by refetch-and-retry
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Parse degradation of monetary values is deliberately absent from this
// taxonomy: an unparsable amount coerces to zero and computation continues.
package errs
