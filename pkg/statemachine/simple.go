package statemachine

import (
	"context"
	"fmt"
	"sync"
)

type edge struct {
	from, event string
}

// SimpleStateMachine is the in-memory StateMachine. Transitions sharing a
// source state and event are tried in declaration order.
type SimpleStateMachine struct {
	mu      sync.RWMutex
	initial State
	current State
	byEdge  map[edge][]Transition
	order   []Transition
}

// NewSimpleStateMachine returns a machine with no transitions, positioned at
// initial.
func NewSimpleStateMachine(initial State) *SimpleStateMachine {
	return &SimpleStateMachine{
		initial: initial,
		current: initial,
		byEdge:  make(map[edge][]Transition),
	}
}

func (sm *SimpleStateMachine) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}
	t := Transition{From: from, To: to, Event: event, Guards: guards, Actions: actions}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	k := edge{from.Name(), event.Name()}
	sm.byEdge[k] = append(sm.byEdge[k], t)
	sm.order = append(sm.order, t)
	return nil
}

// Transitions returns a copy of the graph in declaration order.
func (sm *SimpleStateMachine) Transitions() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]Transition(nil), sm.order...)
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

func (sm *SimpleStateMachine) Reset() error {
	sm.mu.Lock()
	sm.current = sm.initial
	sm.mu.Unlock()
	return nil
}

func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	next, err := sm.fire(ctx, sm.current, event, data)
	if err != nil {
		return err
	}
	sm.current = next
	return nil
}

// FireFrom evaluates event as if the machine were in from and returns the
// target state. The machine's own state does not change.
func (sm *SimpleStateMachine) FireFrom(ctx context.Context, from State, event Event, data any) (State, error) {
	switch {
	case event == nil:
		return nil, ErrInvalidEvent
	case from == nil:
		return nil, ErrInvalidState
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.fire(ctx, from, event, data)
}

func (sm *SimpleStateMachine) CanFire(ctx context.Context, event Event, data any) bool {
	return sm.CanFireFrom(ctx, sm.Current(), event, data)
}

func (sm *SimpleStateMachine) CanFireFrom(ctx context.Context, from State, event Event, data any) bool {
	if from == nil || event == nil {
		return false
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, reason := sm.pick(ctx, from, event, data)
	return reason == 0
}

// pick selects the first candidate whose guards all pass. The caller holds
// the lock.
func (sm *SimpleStateMachine) pick(ctx context.Context, from State, event Event, data any) (*Transition, Refusal) {
	candidates := sm.byEdge[edge{from.Name(), event.Name()}]
	if len(candidates) == 0 {
		return nil, NotDeclared
	}
next:
	for i := range candidates {
		for _, g := range candidates[i].Guards {
			if g != nil && !g(ctx, from, event, data) {
				continue next
			}
		}
		return &candidates[i], 0
	}
	return nil, Rejected
}

// fire runs the picked transition's actions and returns its target. Any
// failing action aborts the transition.
func (sm *SimpleStateMachine) fire(ctx context.Context, from State, event Event, data any) (State, error) {
	t, reason := sm.pick(ctx, from, event, data)
	if t == nil {
		return nil, NewTransitionError(from, event, reason)
	}
	for _, act := range t.Actions {
		if act == nil {
			continue
		}
		if err := act(ctx, from, t.To, event, data); err != nil {
			return nil, fmt.Errorf("action failed: %w", err)
		}
	}
	return t.To, nil
}
