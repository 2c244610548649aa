package fsmkit

import (
	"context"

	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// FieldState lists a field's current state and the exposed transitions
// that can fire from it.
type FieldState struct {
	State       string   `json:"state"`
	Transitions []string `json:"transitions"`
}

// Available reports, per field, which exposed transitions can fire from
// the current state of v. Guards are evaluated without a payload.
func (r *Registry[T]) Available(ctx context.Context, v T) map[string]FieldState {
	out := make(map[string]FieldState, len(r.fields))
	for _, f := range r.fields {
		current := f.get(v)
		available := make([]string, 0, len(f.transitions))
		for _, name := range f.transitions {
			if f.machine.CanFireFrom(ctx, statemachine.StringState(current), statemachine.StringEvent(name), nil) {
				available = append(available, name)
			}
		}
		out[f.name] = FieldState{State: current, Transitions: available}
	}
	return out
}

func (r *Registry[T]) indexHandler() handler.HandlerFunc[handler.Context, transitionRequest] {
	return func(ctx handler.Context, req transitionRequest) handler.Response {
		obj, err := r.load(ctx, req.ID)
		if err != nil {
			return handler.Fail(err)
		}
		return handler.JSON(r.Available(ctx, obj))
	}
}
