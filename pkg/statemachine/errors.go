package statemachine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransition matches every NoTransitionError.
	ErrNoTransition = errors.New("statemachine: no transition")
	// ErrRejected matches every RejectedError.
	ErrRejected = errors.New("statemachine: transition rejected by guards")
)

// NoTransitionError reports that no transition is defined for the event in the current state.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("statemachine: no transition from %q on %q", e.State, e.Event)
}

func (e *NoTransitionError) Unwrap() error { return ErrNoTransition }

// RejectedError reports that transitions exist but every candidate was vetoed by a guard.
type RejectedError struct {
	State string
	Event string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("statemachine: transition from %q on %q rejected by guards", e.State, e.Event)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }
