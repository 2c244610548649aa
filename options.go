package fsmkit

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// Option configures a Registry.
type Option[T any] func(*config[T])

type config[T any] struct {
	fields                []*field[T]
	allowed               map[string]func() []string
	fieldSerializers      map[string]Serializer[T]
	transitionSerializers map[Key]Serializer[T]
	formatters            map[string]Formatter[T]
	logger                *slog.Logger
	errorHandler          handler.ErrorHandler[handler.Context]
	registerer            prometheus.Registerer
	index                 bool
}

func newConfig[T any]() *config[T] {
	return &config[T]{
		allowed:               make(map[string]func() []string),
		fieldSerializers:      make(map[string]Serializer[T]),
		transitionSerializers: make(map[Key]Serializer[T]),
		formatters:            make(map[string]Formatter[T]),
	}
}

// WithField declares a state field. get reads the current state name from a
// resource and set returns the resource with the new state written; for
// pointer types set may mutate and return its argument. Fields keep the
// order in which they are declared.
//
//	fsmkit.WithField("status", article.StatusMachine,
//		func(a *Article) string { return a.Status },
//		func(a *Article, s string) *Article { a.Status = s; return a },
//	)
func WithField[T any](name string, machine statemachine.Definition, get func(T) string, set func(T, string) T) Option[T] {
	return func(c *config[T]) {
		c.fields = append(c.fields, &field[T]{name: name, machine: machine, get: get, set: set})
	}
}

// WithAllowedTransitions restricts a field to the transitions named by
// allowed. Declared transitions missing from the list get no endpoint;
// names the machine does not declare are ignored.
func WithAllowedTransitions[T any](field string, allowed func() []string) Option[T] {
	return func(c *config[T]) {
		if allowed != nil {
			c.allowed[field] = allowed
		}
	}
}

// WithFieldSerializer sets the serializer for every transition of field
// that has no transition-specific serializer.
func WithFieldSerializer[T any](field string, s Serializer[T]) Option[T] {
	return func(c *config[T]) {
		if s != nil {
			c.fieldSerializers[field] = s
		}
	}
}

// WithTransitionSerializer sets the serializer for one transition of field.
// It takes precedence over WithFieldSerializer and the default.
func WithTransitionSerializer[T any](field, transition string, s Serializer[T]) Option[T] {
	return func(c *config[T]) {
		if s != nil {
			c.transitionSerializers[Key{Field: field, Transition: transition}] = s
		}
	}
}

// WithFormatter shapes the response of every transition with this name,
// whichever field it belongs to.
func WithFormatter[T any](transition string, f Formatter[T]) Option[T] {
	return func(c *config[T]) {
		if f != nil {
			c.formatters[transition] = f
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(c *config[T]) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithErrorHandler replaces the handler that renders failed requests.
// Defaults to handler.NewErrorHandler with the registry logger.
func WithErrorHandler[T any](h handler.ErrorHandler[handler.Context]) Option[T] {
	return func(c *config[T]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithMetrics registers transition counters and latency histograms with reg.
// Registries sharing reg share the collectors; the resource label tells
// them apart.
func WithMetrics[T any](reg prometheus.Registerer) Option[T] {
	return func(c *config[T]) {
		c.registerer = reg
	}
}

// WithTransitionIndex adds GET /{id}/transitions, listing per field the
// transitions that can fire from the resource's current state.
func WithTransitionIndex[T any]() Option[T] {
	return func(c *config[T]) {
		c.index = true
	}
}
