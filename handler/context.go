package handler

import (
	"context"
	"net/http"
)

// Context is the per-request value handlers receive. It is a context.Context
// bound to the request's own context, plus access to the raw request and
// response writer.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

// NewContext binds w and r into a Context. Deadlines, cancellation and values
// come from r.Context() as it was at the time of the call.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return requestContext{Context: r.Context(), w: w, r: r}
}

func (c requestContext) Request() *http.Request              { return c.r }
func (c requestContext) ResponseWriter() http.ResponseWriter { return c.w }
