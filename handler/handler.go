package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/fsmkit/pkg/binder"
)

// HandlerFunc handles a request that has already been bound into R.
//
//	func publish(ctx handler.Context, req PublishRequest) handler.Response {
//		article, err := svc.Publish(ctx, req.ID)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(article)
//	}
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response writes itself. A returned error goes to the ErrorHandler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from r. See package binder.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for any error raised while binding,
// handling or rendering.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc. The first decorator given to Wrap is the
// outermost.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

type wrapper[C Context, R any] struct {
	binders    []Bind
	onError    ErrorHandler[C]
	newContext func(http.ResponseWriter, *http.Request) C
	decorators []Decorator[C, R]
}

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapper[C, R])

// WithBinder replaces the binder list with b.
func WithBinder[C Context, R any](b Bind) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		if b != nil {
			w.binders = []Bind{b}
		}
	}
}

// WithBinders appends binders. They run in order and each one should only
// look at its own struct tags:
//
//	handler.WithBinders[handler.Context, SubmitRequest](binder.Path(chi.URLParam), binder.JSON())
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(w *wrapper[C, R]) { w.binders = append(w.binders, binders...) }
}

func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		if h != nil {
			w.onError = h
		}
	}
}

// WithContextFactory is required when C is not Context itself.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		if f != nil {
			w.newContext = f
		}
	}
}

func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(w *wrapper[C, R]) { w.decorators = append(w.decorators, decorators...) }
}

// Wrap adapts h to net/http. Per request it builds the context, runs the
// binders (skipping those returning binder.ErrBinderNotApplicable), calls
// the decorated handler and renders its Response. Every error ends up in
// the ErrorHandler, which defaults to writing the JSON error envelope.
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapper[C, R]{
		onError:    writeError[C],
		newContext: standardContext[C],
	}
	for _, opt := range opts {
		opt(cfg)
	}
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		h = cfg.decorators[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := cfg.newContext(w, r)

		var req R
		if err := cfg.bind(r, &req); err != nil {
			cfg.onError(ctx, err)
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.onError(ctx, err)
		}
	}
}

func (cfg *wrapper[C, R]) bind(r *http.Request, req *R) error {
	for _, b := range cfg.binders {
		err := b(r, req)
		if err != nil && !errors.Is(err, binder.ErrBinderNotApplicable) {
			return err
		}
	}
	return nil
}

// writeError renders the error envelope without logging. NewErrorHandler
// adds logging on top.
func writeError[C Context](ctx C, err error) {
	info := classifyError(err)
	if rerr := JSONError(info.Detail, WithJSONStatus(info.StatusCode)).Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
		http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func standardContext[C Context](w http.ResponseWriter, r *http.Request) C {
	c, ok := NewContext(w, r).(C)
	if !ok {
		panic("handler: custom context type needs WithContextFactory")
	}
	return c
}
