package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPredicateFailed   = errors.New("predicate failed")
	ErrUniqueConflict    = errors.New("unique conflict")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
)

// InvalidStateError reports an operation attempted while the aggregate is in a
// status that does not permit it.
type InvalidStateError struct {
	Aggregate string
	ID        string
	State     string
	Operation string
}

func NewInvalidStateError(aggregate, id, state, operation string) *InvalidStateError {
	return &InvalidStateError{Aggregate: aggregate, ID: id, State: state, Operation: operation}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s %s is %s, cannot %s", ErrInvalidState, e.Aggregate, e.ID, e.State, e.Operation)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InvalidTransitionError reports a status change that is not in the transition table.
type InvalidTransitionError struct {
	ID   string
	From string
	To   string
}

func NewInvalidTransitionError(id, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{ID: id, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	}
	return fmt.Sprintf("%s: %s: %s -> %s", ErrInvalidTransition, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PredicateFailedError reports an animal that does not satisfy the admission
// criteria of a holding session or a transfer.
type PredicateFailedError struct {
	ID     string
	Reason string
}

func NewPredicateFailedError(id, reason string) *PredicateFailedError {
	return &PredicateFailedError{ID: id, Reason: reason}
}

func (e *PredicateFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPredicateFailed, e.ID, e.Reason)
}

func (e *PredicateFailedError) Unwrap() error {
	return ErrPredicateFailed
}

// UniqueConflictError reports a value that is already taken.
type UniqueConflictError struct {
	Field string
	Value string
	Cause error
}

func NewUniqueConflictError(field, value string) *UniqueConflictError {
	return &UniqueConflictError{Field: field, Value: value}
}

func NewUniqueConflictErrorWithCause(field, value string, cause error) *UniqueConflictError {
	return &UniqueConflictError{Field: field, Value: value, Cause: cause}
}

func (e *UniqueConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s is already taken", ErrUniqueConflict, e.Field, sanitize(e.Value))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *UniqueConflictError) Unwrap() error {
	return ErrUniqueConflict
}

// CapacityExceededError reports an admission larger than the remaining capacity.
type CapacityExceededError struct {
	Scope     string
	Requested int
	Remaining int
}

func NewCapacityExceededError(scope string, requested, remaining int) *CapacityExceededError {
	return &CapacityExceededError{Scope: scope, Requested: requested, Remaining: remaining}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s: requested %d, remaining %d", ErrCapacityExceeded, e.Scope, e.Requested, e.Remaining)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// Rejection is the reason a single item of a batch was refused.
type Rejection struct {
	ID  string
	Err error
}

// RejectionsError reports a batch that failed as a whole. It unwraps to every
// rejection reason, so errors.Is matches any of their kinds.
type RejectionsError struct {
	Rejections []Rejection
}

func NewRejectionsError(rejections []Rejection) *RejectionsError {
	return &RejectionsError{Rejections: rejections}
}

func (e *RejectionsError) Error() string {
	parts := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		parts = append(parts, r.Err.Error())
	}
	return fmt.Sprintf("batch rejected: %d item(s): %s", len(e.Rejections), strings.Join(parts, "; "))
}

func (e *RejectionsError) Unwrap() []error {
	out := make([]error, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		out = append(out, r.Err)
	}
	return out
}
