package fsmkit

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/fsmkit/pkg/binder"
)

// Key identifies one transition of one state field.
type Key struct {
	Field      string
	Transition string
}

// Input carries one transition request through validation, execution and
// response shaping. From and To are set once the machine has fired.
type Input[T any] struct {
	Request    *http.Request
	ID         string
	Resource   T
	Field      string
	Transition string

	// Body is the raw request body, nil when the client sent none.
	Body []byte
	// Payload is the validated request data set by Serializer.Validate.
	// It is handed to the machine as the event data.
	Payload any

	From string
	To   string
}

// Serializer validates transition requests and represents resources in
// responses.
type Serializer[T any] interface {
	// Validate checks the request body and stores the decoded payload in
	// in.Payload. Returning handler.ValidationError or
	// validator.ValidationErrors yields a 422 response.
	Validate(ctx context.Context, in *Input[T]) error
	// Represent returns the value rendered as the response data.
	Represent(ctx context.Context, v T) (any, error)
}

// Applier is implemented by serializers that write payload data onto the
// resource after the transition fired. Apply runs once the new state is
// set and before the resource is saved.
type Applier[T any] interface {
	Apply(ctx context.Context, in *Input[T]) (T, error)
}

// Formatter shapes the response of a transition. The serializer passed is
// the one resolved for the transition. A returned handler.Response is
// rendered as is; any other value becomes the JSON data.
type Formatter[T any] func(ctx context.Context, s Serializer[T], in *Input[T]) (any, error)

// Validatable is implemented by payload types that check their own fields.
type Validatable interface {
	Validate() error
}

// JSONSerializer decodes the request body strictly into P and represents
// resources through an optional function. A missing body leaves P at its
// zero value; Validate is still called on it.
type JSONSerializer[T, P any] struct {
	represent func(context.Context, T) (any, error)
	apply     func(context.Context, T, P) (T, error)
}

// NewJSONSerializer creates a JSONSerializer. A nil represent renders the
// resource itself.
//
//	fsmkit.NewJSONSerializer[*Article, RejectPayload](func(_ context.Context, a *Article) (any, error) {
//		return ArticleView(a), nil
//	})
func NewJSONSerializer[T, P any](represent func(context.Context, T) (any, error)) *JSONSerializer[T, P] {
	return &JSONSerializer[T, P]{represent: represent}
}

// Validate implements Serializer.
func (s *JSONSerializer[T, P]) Validate(_ context.Context, in *Input[T]) error {
	var payload P
	if len(in.Body) > 0 {
		if err := binder.DecodeJSON(in.Body, &payload); err != nil {
			return err
		}
	}

	if v, ok := any(payload).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	} else if v, ok := any(&payload).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	in.Payload = payload
	return nil
}

// OnApply sets the function that copies payload data onto the resource
// after a successful transition. Call it while wiring, before serving.
func (s *JSONSerializer[T, P]) OnApply(fn func(ctx context.Context, v T, p P) (T, error)) *JSONSerializer[T, P] {
	s.apply = fn
	return s
}

// Apply implements Applier.
func (s *JSONSerializer[T, P]) Apply(ctx context.Context, in *Input[T]) (T, error) {
	if s.apply == nil {
		return in.Resource, nil
	}
	p, _ := in.Payload.(P)
	return s.apply(ctx, in.Resource, p)
}

// Represent implements Serializer.
func (s *JSONSerializer[T, P]) Represent(ctx context.Context, v T) (any, error) {
	if s.represent == nil {
		return v, nil
	}
	return s.represent(ctx, v)
}

// NoPayload is the payload type of transitions that take no input. Only an
// empty body or an empty JSON object is accepted.
type NoPayload struct{}
