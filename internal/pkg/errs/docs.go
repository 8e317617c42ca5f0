// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Handlers at the HTTP boundary rely on this classification: lookups that fail
// unwrap to ErrObjectNotFound and map to 404, validation failures unwrap to
// ErrValueIsInvalid/ErrValueIsRequired/ErrValueIsOutOfRange and map to 400, and
// everything else surfaces as a generic server error.
package errs
