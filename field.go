package fsmkit

import (
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// field is one state-valued attribute of T driven by a machine definition.
type field[T any] struct {
	name    string
	machine statemachine.Definition
	get     func(T) string
	set     func(T, string) T

	// transitions is the discovered, filtered list in declaration order.
	transitions []string
}

// declares reports whether the machine declares transition, ignoring any
// allowlist.
func (f *field[T]) declares(transition string) bool {
	for _, name := range statemachine.EventNames(f.machine.Transitions()) {
		if name == transition {
			return true
		}
	}
	return false
}
