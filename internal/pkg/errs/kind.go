package errs

import "errors"

// Kind is the error classification surfaced to callers of the engine.
type Kind string

const (
	KindNotFound          Kind = "NotFound"
	KindInvalidState      Kind = "InvalidState"
	KindInvalidTransition Kind = "InvalidTransition"
	KindPredicateFailed   Kind = "PredicateFailed"
	KindUniqueConflict    Kind = "UniqueConflict"
	KindCapacityExceeded  Kind = "CapacityExceeded"
	KindValidationFailed  Kind = "ValidationFailed"
	KindInternal          Kind = "Internal"
)

// KindOf classifies err. A batch rejection is classified by its first reason.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var rejections *RejectionsError
	if errors.As(err, &rejections) && len(rejections.Rejections) > 0 {
		return KindOf(rejections.Rejections[0].Err)
	}

	switch {
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrPredicateFailed):
		return KindPredicateFailed
	case errors.Is(err, ErrUniqueConflict):
		return KindUniqueConflict
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidationFailed
	default:
		return KindInternal
	}
}
