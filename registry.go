package fsmkit

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

// Names become URL path segments and route names.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Registry exposes every transition of a resource's state fields as a POST
// endpoint. It is built once by New and is read-only afterwards, so one
// Registry can serve concurrent requests.
type Registry[T any] struct {
	resource     string
	store        store.Store[T]
	fields       []*field[T]
	byName       map[string]*field[T]
	actions      []*action[T]
	serializers  map[Key]Serializer[T]
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	metrics      *metrics
	index        bool
	router       http.Handler
}

// New builds a Registry for the resource named resource. Every transition
// declared on the fields' machines, narrowed by WithAllowedTransitions,
// gets an endpoint; s is the serializer used where no field or transition
// serializer is configured.
//
// Configuration mistakes are reported together, each wrapping one of
// ErrInvalidConfig, ErrDuplicateField, ErrUnknownField,
// ErrUnknownTransition or ErrMissingSerializer.
func New[T any](resource string, st store.Store[T], s Serializer[T], opts ...Option[T]) (*Registry[T], error) {
	cfg := newConfig[T]()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateConfig(resource, st, s, cfg); err != nil {
		return nil, err
	}

	r := &Registry[T]{
		resource:     resource,
		store:        st,
		fields:       cfg.fields,
		byName:       make(map[string]*field[T], len(cfg.fields)),
		serializers:  make(map[Key]Serializer[T]),
		errorHandler: cfg.errorHandler,
		index:        cfg.index,
	}

	log := cfg.logger
	if log == nil {
		log = slog.Default()
	}
	r.log = log.With(logger.Component("fsmkit"), logger.Resource(resource))
	if r.errorHandler == nil {
		r.errorHandler = handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})
	}

	if cfg.registerer != nil {
		m, err := newMetrics(cfg.registerer)
		if err != nil {
			return nil, err
		}
		r.metrics = m
	}

	title := cases.Title(language.English)
	for _, f := range r.fields {
		r.byName[f.name] = f

		var allowed []string
		if fn, ok := cfg.allowed[f.name]; ok {
			allowed = fn()
			if allowed == nil {
				allowed = []string{}
			}
		}
		f.transitions = discover(f.machine, allowed)

		// Declared transitions hidden by the allowlist still resolve, so
		// SerializerFor answers for every declared name.
		for _, name := range statemachine.EventNames(f.machine.Transitions()) {
			key := Key{Field: f.name, Transition: name}
			r.serializers[key] = resolveSerializer(cfg, key, s)
		}

		for _, name := range f.transitions {
			key := Key{Field: f.name, Transition: name}
			r.actions = append(r.actions, &action[T]{
				field:      f,
				transition: name,
				route:      newRoute(title, f.name, name),
				serializer: r.serializers[key],
				formatter:  cfg.formatters[name],
			})
		}
	}

	r.router = r.buildRouter()
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](resource string, st store.Store[T], s Serializer[T], opts ...Option[T]) *Registry[T] {
	r, err := New(resource, st, s, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resource returns the resource name the registry was built for.
func (r *Registry[T]) Resource() string {
	return r.resource
}

// SerializerFor returns the serializer used for the transition of field.
// Field serializers override the default and transition serializers
// override both.
func (r *Registry[T]) SerializerFor(field, transition string) (Serializer[T], error) {
	f, ok := r.byName[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	s, ok := r.serializers[Key{Field: f.name, Transition: transition}]
	if !ok {
		return nil, fmt.Errorf("%w: %q on field %q", ErrUnknownTransition, transition, field)
	}
	return s, nil
}

func resolveSerializer[T any](cfg *config[T], key Key, fallback Serializer[T]) Serializer[T] {
	if s, ok := cfg.transitionSerializers[key]; ok {
		return s
	}
	if s, ok := cfg.fieldSerializers[key.Field]; ok {
		return s
	}
	return fallback
}

func validateConfig[T any](resource string, st store.Store[T], s Serializer[T], cfg *config[T]) error {
	var errs []error

	if !namePattern.MatchString(resource) {
		errs = append(errs, fmt.Errorf("%w: invalid resource name %q", ErrInvalidConfig, resource))
	}
	if st == nil {
		errs = append(errs, fmt.Errorf("%w: store is nil", ErrInvalidConfig))
	}
	if s == nil {
		errs = append(errs, ErrMissingSerializer)
	}

	fields := make(map[string]*field[T], len(cfg.fields))
	for _, f := range cfg.fields {
		if !namePattern.MatchString(f.name) {
			errs = append(errs, fmt.Errorf("%w: invalid field name %q", ErrInvalidConfig, f.name))
			continue
		}
		if _, dup := fields[f.name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateField, f.name))
			continue
		}
		if f.machine == nil || f.get == nil || f.set == nil {
			errs = append(errs, fmt.Errorf("%w: field %q needs a machine, getter and setter", ErrInvalidConfig, f.name))
			continue
		}
		for _, name := range statemachine.EventNames(f.machine.Transitions()) {
			if !namePattern.MatchString(name) {
				errs = append(errs, fmt.Errorf("%w: invalid transition name %q on field %q", ErrInvalidConfig, name, f.name))
			}
		}
		fields[f.name] = f
	}

	for name := range cfg.allowed {
		if _, ok := fields[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: allowed transitions for %q", ErrUnknownField, name))
		}
	}
	for name := range cfg.fieldSerializers {
		if _, ok := fields[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: serializer for %q", ErrUnknownField, name))
		}
	}
	for key := range cfg.transitionSerializers {
		f, ok := fields[key.Field]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: serializer for %q", ErrUnknownField, key.Field))
			continue
		}
		if !f.declares(key.Transition) {
			errs = append(errs, fmt.Errorf("%w: serializer for %q on field %q", ErrUnknownTransition, key.Transition, key.Field))
		}
	}
	for name := range cfg.formatters {
		declared := slices.ContainsFunc(cfg.fields, func(f *field[T]) bool {
			return f.machine != nil && f.declares(name)
		})
		if !declared {
			errs = append(errs, fmt.Errorf("%w: formatter for %q", ErrUnknownTransition, name))
		}
	}

	return errors.Join(errs...)
}
