package game

import "fmt"

// ValidationError rejects an illegal player action: wrong turn, check while
// behind, malformed raise. It is returned to the caller only and never
// mutates state.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) ValidationError {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StateError rejects an action against a missing room or hand, or one
// submitted after the hand ended. Reported to the caller and logged.
type StateError struct {
	Reason string
}

func (e StateError) Error() string {
	return e.Reason
}

func stateErrorf(format string, args ...interface{}) StateError {
	return StateError{Reason: fmt.Sprintf(format, args...)}
}

// InvariantError indicates corrupted engine state: deck exhausted, pot sum
// mismatch, no active seat where one is required. It aborts the current hand
// and the room falls back to "no hand in progress".
type InvariantError struct {
	Reason string
}

func (e InvariantError) Error() string {
	return e.Reason
}

func invariantErrorf(format string, args ...interface{}) InvariantError {
	return InvariantError{Reason: fmt.Sprintf(format, args...)}
}

func isValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}

func isInvariantError(err error) bool {
	_, ok := err.(InvariantError)
	return ok
}
