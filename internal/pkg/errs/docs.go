// Package errs provides the error taxonomy shared by the shopfloor domain,
// application and adapter layers.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions returning a pointer
//   - Unwrap() returning the sentinel, so callers classify with errors.Is
//
// Validation failures (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange),
// ObjectNotFound, ConcurrencyConflict, SequenceError, GuardViolation,
// TransitionIsInvalid, ExternalTransient and PermissionDenied are the kinds
// the HTTP adapter maps to status codes. ErrEntityIsClosed is a plain sentinel
// with a fixed message.
package errs
