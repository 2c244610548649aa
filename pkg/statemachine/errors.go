package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs a source state, a target state and an event")
	ErrInvalidEvent      = errors.New("statemachine: nil event")
	ErrInvalidState      = errors.New("statemachine: nil state")
)

// Refusal says why an event could not apply to a state.
type Refusal uint8

const (
	// NotDeclared means the graph has no transition for the state and event.
	NotDeclared Refusal = iota + 1
	// Rejected means transitions exist but every one was vetoed by a guard.
	Rejected
)

// TransitionError is returned when an event cannot fire from a state.
type TransitionError struct {
	State  string
	Event  string
	Reason Refusal
}

func (e *TransitionError) Error() string {
	if e.Reason == Rejected {
		return fmt.Sprintf("event %q rejected by guards in state %q", e.Event, e.State)
	}
	return fmt.Sprintf("event %q is not declared for state %q", e.Event, e.State)
}

// NewTransitionError builds a TransitionError for from and event.
func NewTransitionError(from State, event Event, reason Refusal) *TransitionError {
	return &TransitionError{State: from.Name(), Event: event.Name(), Reason: reason}
}

func refusal(err error) Refusal {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Reason
	}
	return 0
}

func IsNoTransitionAvailableError(err error) bool { return refusal(err) == NotDeclared }

func IsTransitionRejectedError(err error) bool { return refusal(err) == Rejected }

// IsIllegalTransitionError matches any TransitionError: the event either is
// not declared for the state or was vetoed by guards.
func IsIllegalTransitionError(err error) bool { return refusal(err) != 0 }
