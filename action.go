package fsmkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/binder"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

// action is the handler bound to one (field, transition) pair.
type action[T any] struct {
	field      *field[T]
	transition string
	route      Route
	serializer Serializer[T]
	formatter  Formatter[T]
}

func (r *Registry[T]) transitionHandler(a *action[T]) handler.HandlerFunc[handler.Context, transitionRequest] {
	return func(ctx handler.Context, req transitionRequest) handler.Response {
		start := time.Now()
		resp, result := r.execute(ctx, a, req.ID)
		r.metrics.observe(r.resource, a.field.name, a.transition, result, time.Since(start))
		return resp
	}
}

// execute loads the resource, validates the request, fires the transition,
// saves the result and shapes the response. The returned outcome labels
// the metrics.
func (r *Registry[T]) execute(ctx handler.Context, a *action[T], id string) (handler.Response, string) {
	log := r.log.With(
		logger.ObjectID(id),
		logger.Field(a.field.name),
		logger.Transition(a.transition),
	)

	obj, err := r.load(ctx, id)
	if err != nil {
		if errors.Is(err, handler.ErrNotFound) {
			return handler.Fail(err), outcomeNotFound
		}
		return handler.Fail(err), outcomeFailed
	}

	body, err := binder.ReadJSON(ctx.Request())
	if err != nil {
		return handler.Fail(err), outcomeInvalid
	}

	in := &Input[T]{
		Request:    ctx.Request(),
		ID:         id,
		Resource:   obj,
		Field:      a.field.name,
		Transition: a.transition,
		Body:       body,
	}
	if err := a.serializer.Validate(ctx, in); err != nil {
		return handler.Fail(err), outcomeInvalid
	}

	in.From = a.field.get(obj)
	to, err := a.field.machine.FireFrom(ctx, statemachine.StringState(in.From), statemachine.StringEvent(a.transition), in.Payload)
	if err != nil {
		if statemachine.IsIllegalTransitionError(err) {
			log.DebugContext(ctx, "transition refused", logger.Error(err))
			return handler.Fail(fmt.Errorf("%w: %w", ErrTransitionNotAllowed, err)), outcomeRefused
		}
		return handler.Fail(fmt.Errorf("fire %s: %w", a.transition, err)), outcomeFailed
	}
	in.To = to.Name()

	obj = a.field.set(obj, in.To)
	in.Resource = obj

	if ap, ok := a.serializer.(Applier[T]); ok {
		if obj, err = ap.Apply(ctx, in); err != nil {
			return handler.Fail(err), outcomeFailed
		}
		in.Resource = obj
	}

	if err := r.store.Save(ctx, obj); err != nil {
		log.ErrorContext(ctx, "transition applied but not persisted",
			logger.StateChange(in.From, in.To),
			logger.Error(err),
		)
		return handler.Fail(fmt.Errorf("save %s: %w", id, err)), outcomeFailed
	}

	log.InfoContext(ctx, "transition applied", logger.StateChange(in.From, in.To))

	resp, err := r.shape(ctx, a, in)
	if err != nil {
		return handler.Fail(err), outcomeFailed
	}
	return resp, outcomeApplied
}

func (r *Registry[T]) load(ctx context.Context, id string) (T, error) {
	obj, err := r.store.Get(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, store.ErrNotFound) {
			return zero, fmt.Errorf("%w: %s %q", handler.ErrNotFound, r.resource, id)
		}
		return zero, fmt.Errorf("load %s: %w", id, err)
	}
	return obj, nil
}

// shape renders the formatter result when one is registered for the
// transition, otherwise the serializer's representation.
func (r *Registry[T]) shape(ctx context.Context, a *action[T], in *Input[T]) (handler.Response, error) {
	var (
		data any
		err  error
	)
	if a.formatter != nil {
		data, err = a.formatter(ctx, a.serializer, in)
	} else {
		data, err = a.serializer.Represent(ctx, in.Resource)
	}
	if err != nil {
		return nil, err
	}

	if resp, ok := data.(handler.Response); ok {
		return resp, nil
	}
	return handler.JSON(data), nil
}
