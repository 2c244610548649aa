package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder: body must be application/json")
	ErrFailedToParseJSON    = errors.New("binder: malformed JSON body")
	ErrFailedToParsePath    = errors.New("binder: bad path parameter")
	ErrMissingContentType   = errors.New("binder: missing Content-Type")
	ErrRequestTooLarge      = errors.New("binder: body too large")

	// ErrBinderNotApplicable lets a binder opt out for a request.
	// handler.Wrap moves on to the next binder.
	ErrBinderNotApplicable = errors.New("binder: not applicable")
)
