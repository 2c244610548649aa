package fsmkit

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"

	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/binder"
)

// Route describes one generated endpoint. Patterns are relative to the
// resource mount point.
type Route struct {
	Name       string `json:"name" yaml:"name"`
	Title      string `json:"title" yaml:"title"`
	Method     string `json:"method" yaml:"method"`
	Pattern    string `json:"pattern" yaml:"pattern"`
	Field      string `json:"field" yaml:"field"`
	Transition string `json:"transition" yaml:"transition"`
}

func newRoute(title cases.Caser, field, transition string) Route {
	return Route{
		Name:       fmt.Sprintf("%s-%s-transition", field, transition),
		Title:      titleWords(title, field+" "+transition),
		Method:     http.MethodPost,
		Pattern:    fmt.Sprintf("/{id}/%s/%s", field, transition),
		Field:      field,
		Transition: transition,
	}
}

// titleWords cases every run of letters on its own, so "review sign_off"
// becomes "Review Sign_Off" and "step2b" becomes "Step2B".
func titleWords(title cases.Caser, s string) string {
	var (
		b     strings.Builder
		start = -1
	)
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(title.String(s[start:end]))
			start = -1
		}
	}
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(s))
	return b.String()
}

// Routes returns the transition routes in field, then transition,
// declaration order.
func (r *Registry[T]) Routes() []Route {
	routes := make([]Route, len(r.actions))
	for i, a := range r.actions {
		routes[i] = a.route
	}
	return slices.Clip(routes)
}

// Handle returns the handler serving every route. Its patterns are
// relative, so mount it under the resource prefix.
func (r *Registry[T]) Handle() http.Handler {
	return r.router
}

// Mount attaches the registry to router under "/<resource>".
func (r *Registry[T]) Mount(router chi.Router) {
	router.Mount("/"+r.resource, r.router)
}

// RegisterRoutes adds the routes to router directly, for resources that
// serve other endpoints under the same prefix:
//
//	r.Route("/articles", func(r chi.Router) {
//		r.Post("/", create)
//		r.Get("/{id}", show)
//		reg.RegisterRoutes(r)
//	})
func (r *Registry[T]) RegisterRoutes(router chi.Router) {
	for _, a := range r.actions {
		router.Method(a.route.Method, a.route.Pattern, handler.Wrap(r.transitionHandler(a),
			handler.WithBinder[handler.Context, transitionRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, transitionRequest](r.errorHandler),
		))
	}
	if r.index {
		router.Get("/{id}/transitions", handler.Wrap(r.indexHandler(),
			handler.WithBinder[handler.Context, transitionRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, transitionRequest](r.errorHandler),
		))
	}
}

// transitionRequest binds the resource identifier from the URL.
type transitionRequest struct {
	ID string `path:"id"`
}

func (r *Registry[T]) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.NotFound(renderError(handler.ErrNotFound))
	router.MethodNotAllowed(renderError(handler.ErrMethodNotAllowed))
	r.RegisterRoutes(router)
	return router
}

func renderError(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		_ = handler.JSONError(err).Render(w, req)
	}
}
