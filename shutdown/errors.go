package shutdown

import "errors"

var (
	// ErrInvalidStateTransition is returned when attempting a backwards state transition
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrAlreadyTerminated is returned when attempting to change state after termination
	ErrAlreadyTerminated = errors.New("shutdown already terminated")

	// ErrShutdownInProgress is returned when registering a handler after the sequence started
	ErrShutdownInProgress = errors.New("shutdown already in progress")
)
