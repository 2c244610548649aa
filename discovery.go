package fsmkit

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// discover lists the transition names of def in declaration order. A
// non-nil allowed narrows the list to the names it contains.
func discover(def statemachine.Definition, allowed []string) []string {
	names := statemachine.EventNames(def.Transitions())
	if allowed == nil {
		return names
	}
	return slices.DeleteFunc(names, func(name string) bool {
		return !slices.Contains(allowed, name)
	})
}

// Fields returns the state field names in declaration order.
func (r *Registry[T]) Fields() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.name
	}
	return names
}

// Transitions returns the exposed transition names of field in declaration
// order.
func (r *Registry[T]) Transitions(field string) ([]string, error) {
	f, ok := r.byName[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return slices.Clone(f.transitions), nil
}
