package errs

import (
	"errors"
	"fmt"
)

var (
	ErrExternalTransient = errors.New("external system unavailable")
	ErrPermissionDenied  = errors.New("permission denied")
)

// ExternalTransientError wraps a failure of ERP, label registry or directory
// that may succeed on a later attempt: timeouts, 5xx and throttling.
type ExternalTransientError struct {
	System    string
	Operation string
	Cause     error
}

func NewExternalTransientError(system, operation string, cause error) *ExternalTransientError {
	return &ExternalTransientError{System: system, Operation: operation, Cause: cause}
}

func (e *ExternalTransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrExternalTransient, e.System, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrExternalTransient, e.System, e.Operation)
}

func (e *ExternalTransientError) Unwrap() error {
	return ErrExternalTransient
}

type PermissionDeniedError struct {
	ActorID string
	Sector  string
}

func NewPermissionDeniedError(actorID, sector string) *PermissionDeniedError {
	return &PermissionDeniedError{ActorID: actorID, Sector: sector}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s is not active in sector %s", ErrPermissionDenied, e.ActorID, e.Sector)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}
