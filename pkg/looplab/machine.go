package looplab

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// Machine serves a looplab/fsm event table as a statemachine.Definition.
// Every FireFrom builds a fresh *fsm.FSM positioned at the given state, so the
// callbacks are shared between concurrent calls and must not keep per-call
// state of their own.
type Machine struct {
	events    fsm.Events
	callbacks fsm.Callbacks
}

var _ statemachine.Definition = (*Machine)(nil)

// New wraps events and callbacks. Callback keys follow looplab's naming,
// e.g. "before_approve" or "enter_approved"; a before_ callback that calls
// e.Cancel acts as a guard.
func New(events fsm.Events, callbacks fsm.Callbacks) *Machine {
	return &Machine{events: events, callbacks: callbacks}
}

// Transitions expands every EventDesc into one transition per source state,
// keeping the table's order.
func (m *Machine) Transitions() []statemachine.Transition {
	transitions := make([]statemachine.Transition, 0, len(m.events))
	for _, desc := range m.events {
		for _, src := range desc.Src {
			transitions = append(transitions, statemachine.Transition{
				From:  statemachine.StringState(src),
				To:    statemachine.StringState(desc.Dst),
				Event: statemachine.StringEvent(desc.Name),
			})
		}
	}
	return transitions
}

// FireFrom fires event from state from and returns the resulting state.
// data reaches callbacks as e.Args[0]; use Payload to read it back typed.
func (m *Machine) FireFrom(ctx context.Context, from statemachine.State, event statemachine.Event, data any) (statemachine.State, error) {
	if event == nil {
		return nil, statemachine.ErrInvalidEvent
	}
	if from == nil {
		return nil, statemachine.ErrInvalidState
	}

	f := fsm.NewFSM(from.Name(), m.events, m.callbacks)

	var args []any
	if data != nil {
		args = append(args, data)
	}

	if err := f.Event(ctx, event.Name(), args...); err != nil {
		return m.mapError(from, event, err)
	}
	return statemachine.StringState(f.Current()), nil
}

// CanFireFrom reports whether event is declared for state from. looplab does
// not run callbacks for this check, so before_ guards are not consulted.
func (m *Machine) CanFireFrom(_ context.Context, from statemachine.State, event statemachine.Event, _ any) bool {
	if event == nil || from == nil {
		return false
	}
	return fsm.NewFSM(from.Name(), m.events, nil).Can(event.Name())
}

func (m *Machine) mapError(from statemachine.State, event statemachine.Event, err error) (statemachine.State, error) {
	var (
		noTransition fsm.NoTransitionError
		invalid      fsm.InvalidEventError
		unknown      fsm.UnknownEventError
		canceled     fsm.CanceledError
	)

	switch {
	case errors.As(err, &noTransition):
		// Src == Dst: looplab reports it, but the event did apply.
		if noTransition.Err != nil {
			return nil, noTransition.Err
		}
		return from, nil
	case errors.As(err, &invalid), errors.As(err, &unknown):
		return nil, statemachine.NewTransitionError(from, event, statemachine.NotDeclared)
	case errors.As(err, &canceled):
		rejected := statemachine.NewTransitionError(from, event, statemachine.Rejected)
		if canceled.Err != nil {
			return nil, errors.Join(rejected, canceled.Err)
		}
		return nil, rejected
	default:
		return nil, err
	}
}

// Payload returns the data passed to FireFrom from inside a callback.
func Payload[P any](e *fsm.Event) (P, bool) {
	var zero P
	if e == nil || len(e.Args) == 0 {
		return zero, false
	}
	p, ok := e.Args[0].(P)
	return p, ok
}
