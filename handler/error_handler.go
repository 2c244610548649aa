package handler

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/dmitrymomot/fsmkit/pkg/binder"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/requestid"
	"github.com/dmitrymomot/fsmkit/pkg/validator"
)

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ExposeInternalErrors writes the raw error message for 5xx responses.
	// Leave it off in production: messages may carry driver or query details.
	ExposeInternalErrors bool
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Detail     *ErrorDetail
	LogLevel   slog.Level
}

// Helper functions for HTTP status code classification
func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError analyzes the error and returns structured error information
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Detail: &ErrorDetail{
			Code:    "internal_error",
			Message: http.StatusText(http.StatusInternalServerError),
		},
	}

	var (
		httpErr    HTTPError
		validErr   ValidationError
		validRules validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validErr):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Detail = &ErrorDetail{Code: "validation_error", Message: validErr.Error()}
		if len(validErr) > 0 {
			info.Detail.Details = make(map[string][]string, len(validErr))
			maps.Copy(info.Detail.Details, validErr)
		}

	case errors.As(err, &validRules):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Detail = &ErrorDetail{Code: "validation_error", Message: validRules.Error()}
		if fields := validRules.Fields(); len(fields) > 0 {
			info.Detail.Details = make(map[string][]string, len(fields))
			for _, field := range fields {
				info.Detail.Details[field] = validRules.Get(field)
			}
		}

	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Detail = &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
		// A wrapped HTTPError carries a more specific message than the status text.
		if isClientError(httpErr.Code) && err.Error() != httpErr.Error() {
			info.Detail.Message = err.Error()
		}

	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Detail = &ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: err.Error()}

	case errors.Is(err, binder.ErrRequestTooLarge):
		info.StatusCode = http.StatusRequestEntityTooLarge
		info.Detail = &ErrorDetail{Code: ErrRequestEntityTooLarge.Key, Message: err.Error()}

	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParsePath):
		info.StatusCode = http.StatusBadRequest
		info.Detail = &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// logError logs the error with request context
func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler creates the default error handler. It classifies the error,
// logs it at warn level for client errors and error level otherwise, and
// writes the standard JSON error envelope.
// Configure this once in main.go and pass to all services.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	// Default logger if not provided
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err)
		logError(log, ctx, err, info)

		if cfg.ExposeInternalErrors && !isClientError(info.StatusCode) {
			info.Detail.Message = err.Error()
		}

		response := JSONError(info.Detail, WithJSONStatus(info.StatusCode))
		if renderErr := response.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error_response"),
			)
		}
	}
}
