// Package handler provides type-safe HTTP request handling for JSON APIs.
//
// Handlers are generic functions that receive a bound request value and
// return a Response. Wrap turns them into http.HandlerFunc values, running
// the configured binders first and routing every failure, from binding,
// from the handler itself via Fail, or from rendering, through one
// ErrorHandler.
//
//	type PublishRequest struct {
//		ID string `path:"id"`
//	}
//
//	func publish(ctx handler.Context, req PublishRequest) handler.Response {
//		article, err := svc.Publish(ctx, req.ID)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(article)
//	}
//
//	r.Post("/articles/{id}/publish", handler.Wrap(publish,
//		handler.WithBinders[handler.Context, PublishRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, PublishRequest](
//			handler.NewErrorHandler(log, handler.ErrorHandlerConfig{}),
//		),
//	))
//
// # Responses
//
//	handler.JSON(data)                          // 200 {"data": ...}
//	handler.JSON(data, handler.WithJSONStatus(201))
//	handler.JSONError(err)                      // classified error envelope
//	handler.Empty()                             // 204
//	handler.Fail(err)                           // defer to the ErrorHandler
//
// # Errors
//
// HTTPError pairs a status code with a machine-readable key. Wrapping one
// with fmt.Errorf keeps its status while the wrapped message becomes the
// client-facing message for 4xx codes:
//
//	return handler.Fail(fmt.Errorf("%w: %w", handler.ErrConflict, err))
//
// ValidationError (and validator.ValidationErrors) render as 422 with
// per-field details. Binder failures render as 400, 413 or 415.
package handler
