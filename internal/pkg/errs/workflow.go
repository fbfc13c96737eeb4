package errs

import (
	"errors"
	"fmt"
)

var (
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrSequenceIsInvalid   = errors.New("sequence is invalid")
	ErrGuardViolation      = errors.New("guard violation")
	ErrTransitionIsInvalid = errors.New("transition is invalid")

	// ErrEntityIsClosed is returned unchanged for every transition attempted
	// from a terminal stage.
	ErrEntityIsClosed = errors.New("entity is closed")
)

// ConcurrencyConflictError means the entity no longer had the expected
// version and status when the claim ran. Callers re-read and decide; nothing
// retries automatically.
type ConcurrencyConflictError struct {
	Kind            string
	ID              any
	ExpectedVersion int
	ExpectedStatus  string
	Cause           error
}

func NewConcurrencyConflictError(kind string, id any, expectedVersion int, expectedStatus string) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Kind: kind, ID: id, ExpectedVersion: expectedVersion, ExpectedStatus: expectedStatus}
}

func NewConcurrencyConflictErrorWithCause(kind string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Kind: kind, ID: id, ExpectedVersion: -1, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %v)", ErrConcurrencyConflict, e.Kind, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v is no longer at version %d in status %s",
		ErrConcurrencyConflict, e.Kind, e.ID, e.ExpectedVersion, e.ExpectedStatus)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// SequenceError is an operator action rejected by the control sequence rules.
type SequenceError struct {
	Stage     string
	Last      string
	Requested string
	Rule      string
}

func NewSequenceError(stage, last, requested, rule string) *SequenceError {
	return &SequenceError{Stage: stage, Last: last, Requested: requested, Rule: rule}
}

func (e *SequenceError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%s: %s (last %s, requested %s)", ErrSequenceIsInvalid, e.Rule, e.Last, e.Requested)
	}
	return fmt.Sprintf("%s: %s (stage %s, last %s, requested %s)",
		ErrSequenceIsInvalid, e.Rule, e.Stage, e.Last, e.Requested)
}

func (e *SequenceError) Unwrap() error {
	return ErrSequenceIsInvalid
}

// GuardViolationError names the unmet condition of a stage guard. From and To
// are empty for guards that do not belong to a transition.
type GuardViolationError struct {
	Subject   string
	From      string
	To        string
	Condition string
}

func NewGuardViolationError(subject, from, to, condition string) *GuardViolationError {
	return &GuardViolationError{Subject: subject, From: from, To: to, Condition: condition}
}

func (e *GuardViolationError) Error() string {
	if e.From == "" && e.To == "" {
		return fmt.Sprintf("%s: %s: %s", ErrGuardViolation, e.Subject, e.Condition)
	}
	return fmt.Sprintf("%s: %s %s -> %s: %s", ErrGuardViolation, e.Subject, e.From, e.To, e.Condition)
}

func (e *GuardViolationError) Unwrap() error {
	return ErrGuardViolation
}

type TransitionIsInvalidError struct {
	Subject string
	From    string
	To      string
}

func NewTransitionIsInvalidError(subject, from, to string) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{Subject: subject, From: from, To: to}
}

func (e *TransitionIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s cannot go from %s to %s", ErrTransitionIsInvalid, e.Subject, e.From, e.To)
}

func (e *TransitionIsInvalidError) Unwrap() error {
	return ErrTransitionIsInvalid
}
