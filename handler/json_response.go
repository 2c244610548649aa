package handler

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// JSONResponse is the envelope every JSON body is written in. Exactly one of
// Data or Error is set in practice.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail is the "error" member of the envelope. Details maps field
// names to messages for validation failures.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type envelope struct {
	status int
	body   JSONResponse
}

// Render encodes the body before touching w, so an encoding failure leaves
// the response unwritten for the ErrorHandler.
func (e *envelope) Render(w http.ResponseWriter, _ *http.Request) error {
	body, err := json.Marshal(e.body)
	if err != nil {
		return fmt.Errorf("handler: encode JSON response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.status)
	_, err = w.Write(append(body, '\n'))
	return err
}

// setError fills the envelope from an *ErrorDetail or a classified error.
// It reports false for anything else.
func (e *envelope) setError(v any) bool {
	switch err := v.(type) {
	case *ErrorDetail:
		e.status, e.body.Error = http.StatusInternalServerError, err
	case error:
		info := classifyError(err)
		e.status, e.body.Error = info.StatusCode, info.Detail
	default:
		return false
	}
	return true
}

// JSONOption adjusts an envelope before it is rendered.
type JSONOption func(*envelope)

func WithJSONStatus(status int) JSONOption {
	return func(e *envelope) { e.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(e *envelope) { e.body.Meta = meta }
}

// JSON renders v as {"data": v} with status 200. A JSONResponse is written
// as is, and errors or *ErrorDetail values are written as an error envelope.
func JSON(v any, opts ...JSONOption) Response {
	e := &envelope{status: http.StatusOK}
	if prebuilt, ok := v.(JSONResponse); ok {
		e.body = prebuilt
	} else if !e.setError(v) {
		e.body.Data = v
	}
	return e.with(opts)
}

// JSONError renders an error envelope. err is an error, classified the same
// way the default error handler does it, or a ready *ErrorDetail.
func JSONError(err any, opts ...JSONOption) Response {
	e := &envelope{status: http.StatusInternalServerError}
	e.setError(err)
	return e.with(opts)
}

func (e *envelope) with(opts []JSONOption) Response {
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type failure struct{ err error }

func (f failure) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the ErrorHandler given to Wrap instead of writing a
// body, so classification and logging happen in one place.
//
//	article, err := store.Get(ctx, req.ID)
//	if err != nil {
//		return handler.Fail(err)
//	}
func Fail(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return failure{err: err}
}
