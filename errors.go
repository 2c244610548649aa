package fsmkit

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/fsmkit/handler"
)

// Configuration errors returned by New.
var (
	ErrInvalidConfig     = errors.New("invalid registry configuration")
	ErrUnknownField      = errors.New("unknown state field")
	ErrDuplicateField    = errors.New("duplicate state field")
	ErrUnknownTransition = errors.New("unknown transition")
	ErrMissingSerializer = errors.New("missing default serializer")
)

// ErrTransitionNotAllowed is returned to clients when the resource's current
// state does not permit the requested transition, or its guards reject it.
var ErrTransitionNotAllowed = handler.HTTPError{Code: http.StatusConflict, Key: "transition_not_allowed"}
