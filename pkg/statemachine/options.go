package statemachine

import "fmt"

// Option applies one piece of configuration to a machine under construction.
type Option func(*SimpleStateMachine) error

// TransitionOption attaches guards or actions to a single transition.
type TransitionOption func(*Transition)

// New builds a machine positioned at initial and applies opts in order.
// The first failing option aborts construction.
func New(initial State, opts ...Option) (StateMachine, error) {
	if initial == nil {
		return nil, fmt.Errorf("%w: initial state", ErrInvalidState)
	}
	sm := NewSimpleStateMachine(initial)
	for _, opt := range opts {
		if err := opt(sm); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// MustNew is New for graphs declared at startup. It panics on error.
func MustNew(initial State, opts ...Option) StateMachine {
	sm, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Errorf("statemachine: %w", err))
	}
	return sm
}

// WithTransition declares from -> to on event.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	t := Transition{From: from, To: to, Event: event}
	for _, opt := range opts {
		opt(&t)
	}
	return WithTransitions(t)
}

// WithTransitions declares every transition in ts. A failure names the
// offending entry by its position.
func WithTransitions(ts ...Transition) Option {
	return func(sm *SimpleStateMachine) error {
		for i, t := range ts {
			if err := sm.AddTransition(t.From, t.To, t.Event, t.Guards, t.Actions); err != nil {
				return fmt.Errorf("transition %d (%s -> %s on %s): %w",
					i, nameOf(t.From), nameOf(t.To), nameOf(t.Event), err)
			}
		}
		return nil
	}
}

// WithGuard appends guards to a transition. Nil guards are dropped.
func WithGuard(guards ...Guard) TransitionOption {
	return func(t *Transition) {
		for _, g := range guards {
			if g != nil {
				t.Guards = append(t.Guards, g)
			}
		}
	}
}

// WithAction appends actions to a transition. Nil actions are dropped.
func WithAction(actions ...Action) TransitionOption {
	return func(t *Transition) {
		for _, a := range actions {
			if a != nil {
				t.Actions = append(t.Actions, a)
			}
		}
	}
}

func nameOf(v interface{ Name() string }) string {
	if v == nil {
		return "<nil>"
	}
	return v.Name()
}
