package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse is reported when a HandlerFunc returns nil.
var ErrNilResponse = errors.New("handler: nil response")

// HTTPError is an error that knows its status code. Key is the
// machine-readable code written to the "error.code" member of the body.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError declares an application-specific HTTP error:
//
//	var ErrTransitionNotAllowed = handler.NewHTTPError(http.StatusConflict, "transition_not_allowed")
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest            = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrForbidden             = NewHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound              = NewHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict              = NewHTTPError(http.StatusConflict, "conflict")
	ErrRequestEntityTooLarge = NewHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType  = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrInternalServerError   = NewHTTPError(http.StatusInternalServerError, "internal_server_error")
)
