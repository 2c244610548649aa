package statemachine

import "errors"

// Builder declares a graph one event at a time:
//
//	sm, err := statemachine.NewBuilder(Draft).
//		Permit(Submit, InReview, Draft).
//		Permit(Withdraw, Draft, InReview, Approved).
//		Permit(Archive, Archived, Published).Guard(confirmed).
//		Build()
//
// Guard and Do apply to every transition added by the preceding Permit.
// Errors are collected and reported together by Build.
type Builder struct {
	initial State
	done    []Transition
	pending []Transition
	errs    []error
}

// NewBuilder starts a graph whose machines begin at initial.
func NewBuilder(initial State) *Builder {
	return &Builder{initial: initial}
}

// Permit lets event move each of sources to target. Sources are kept in the
// given order.
func (b *Builder) Permit(event Event, target State, sources ...State) *Builder {
	b.flush()
	if len(sources) == 0 {
		b.errs = append(b.errs, ErrInvalidTransition)
		return b
	}
	for _, src := range sources {
		b.pending = append(b.pending, Transition{From: src, To: target, Event: event})
	}
	return b
}

// Guard adds guards to the transitions of the last Permit.
func (b *Builder) Guard(guards ...Guard) *Builder {
	return b.apply(WithGuard(guards...))
}

// Do adds actions to the transitions of the last Permit.
func (b *Builder) Do(actions ...Action) *Builder {
	return b.apply(WithAction(actions...))
}

// Build validates the declared graph and returns a machine at the initial
// state.
func (b *Builder) Build() (StateMachine, error) {
	b.flush()
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return New(b.initial, WithTransitions(b.done...))
}

// MustBuild is Build that panics on error.
func (b *Builder) MustBuild() StateMachine {
	sm, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sm
}

func (b *Builder) apply(opt TransitionOption) *Builder {
	if len(b.pending) == 0 {
		b.errs = append(b.errs, errors.New("statemachine: Guard or Do called before Permit"))
		return b
	}
	for i := range b.pending {
		opt(&b.pending[i])
	}
	return b
}

func (b *Builder) flush() {
	b.done = append(b.done, b.pending...)
	b.pending = nil
}
