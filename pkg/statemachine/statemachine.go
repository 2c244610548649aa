package statemachine

import "context"

// State and Event are anything with a stable name. StringState and
// StringEvent cover the common case.
type (
	State interface{ Name() string }
	Event interface{ Name() string }
)

type StringState string

func (s StringState) Name() string { return string(s) }

type StringEvent string

func (e StringEvent) Name() string { return string(e) }

// Guard vetoes a transition by returning false. data is whatever the caller
// passed to Fire or FireFrom.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs before the state changes. An error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition is one edge of the graph. All Guards must pass and Actions run
// in order.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// Definition evaluates events against a state supplied by the caller, so
// one graph can serve every record that stores its own state.
type Definition interface {
	// Transitions lists the graph in declaration order.
	Transitions() []Transition
	FireFrom(ctx context.Context, from State, event Event, data any) (State, error)
	// CanFireFrom reports whether FireFrom would find a transition whose
	// guards pass. Actions are not run.
	CanFireFrom(ctx context.Context, from State, event Event, data any) bool
}

// StateMachine is a Definition that also tracks a current state.
type StateMachine interface {
	Definition
	Current() State
	AddTransition(from, to State, event Event, guards []Guard, actions []Action) error
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
	Reset() error
}

// EventNames returns each distinct event name once, in the order the events
// first appear in transitions.
func EventNames(transitions []Transition) []string {
	var names []string
	seen := make(map[string]bool, len(transitions))
	for _, t := range transitions {
		if t.Event == nil || seen[t.Event.Name()] {
			continue
		}
		seen[t.Event.Name()] = true
		names = append(names, t.Event.Name())
	}
	return names
}
