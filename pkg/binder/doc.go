// Package binder binds HTTP request data to Go structs.
//
// Binders share one signature, func(r *http.Request, v any) error, so they
// plug straight into handler.WithBinder and handler.WithBinders:
//
//	type TransitionRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Post("/articles/{id}/status/publish", handler.Wrap(h,
//		handler.WithBinders[handler.Context, TransitionRequest](binder.Path(chi.URLParam)),
//	))
//
// # Available Binders
//
//   - JSON(): strictly decodes a required application/json body
//   - Path(extractor): binds path parameters using a router-specific extractor
//
// For bodies that may legitimately be empty, ReadJSON and DecodeJSON split the
// JSON binder in two: ReadJSON enforces size and content type and returns nil
// for a blank body, DecodeJSON decodes with unknown fields rejected.
//
// # Error Handling
//
// All errors wrap one of the package sentinels so callers can map them to
// status codes with errors.Is:
//
//	ErrUnsupportedMediaType  // 415
//	ErrRequestTooLarge       // 413
//	ErrMissingContentType    // 400
//	ErrFailedToParseJSON     // 400
//	ErrFailedToParsePath     // 400
//
// String fields decoded from JSON are stripped of control characters other
// than tabs and newlines.
package binder
