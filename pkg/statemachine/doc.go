// Package statemachine provides a small, type-safe finite-state-machine
// implementation used to declare the transitions of a resource's state field.
//
// The package revolves around two minimal interfaces, State and Event, and a
// transition graph built from them. Each transition may carry Guards, which
// can veto it from runtime data, and Actions, which run before the state
// changes and abort the transition when they fail.
//
// # Definitions and machines
//
// A StateMachine holds its own current state and is convenient for
// in-process workflows. Records that keep their state in a database column
// use the Definition half of the interface instead: FireFrom evaluates an
// event from a state supplied by the caller and returns the target state
// without touching the machine, so one definition can be shared by every
// record and every request.
//
//	const (
//	    Draft    = statemachine.StringState("draft")
//	    InReview = statemachine.StringState("in_review")
//	    Submit   = statemachine.StringEvent("submit")
//	)
//
//	machine := statemachine.MustNew(Draft,
//	    statemachine.WithTransition(Draft, InReview, Submit),
//	)
//
//	next, err := machine.FireFrom(ctx, statemachine.StringState(article.Status), Submit, nil)
//	if err != nil {
//	    return err
//	}
//	article.Status = next.Name()
//
// Transitions returns the declared graph in declaration order. EventNames
// reduces it to the distinct event names, which is what HTTP layers expose as
// actions.
//
// # Guards and Actions
//
//	isOwner := func(ctx context.Context, from statemachine.State, evt statemachine.Event, data any) bool {
//	    u, ok := data.(map[string]any)
//	    return ok && u["role"] == "owner"
//	}
//
// When several transitions share a source state and event, the first one whose
// guards all pass wins.
//
// # Error Handling
//
// FireFrom reports an event that cannot apply as a *TransitionError whose
// Reason is NotDeclared or Rejected:
//
//	var te *statemachine.TransitionError
//	if errors.As(err, &te) && te.Reason == statemachine.Rejected {
//	    // guards said no
//	}
//
// IsIllegalTransitionError matches both reasons.
//
// # Concurrency
//
// SimpleStateMachine guards its transition map and current state with a
// RWMutex. FireFrom and CanFireFrom only take the read lock.
package statemachine
