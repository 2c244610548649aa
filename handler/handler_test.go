package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/binder"
)

type publishRequest struct {
	ID    string `path:"id"`
	Title string `json:"title"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds path and body", func(t *testing.T) {
		t.Parallel()
		h := func(ctx handler.Context, req publishRequest) handler.Response {
			return handler.JSON(map[string]string{"id": req.ID, "title": req.Title})
		}

		r := chi.NewRouter()
		r.Post("/articles/{id}/publish", handler.Wrap(h,
			handler.WithBinders[handler.Context, publishRequest](binder.Path(chi.URLParam), binder.JSON()),
		))

		req := httptest.NewRequest(http.MethodPost, "/articles/42/publish", strings.NewReader(`{"title":"Hello"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, map[string]any{"id": "42", "title": "Hello"}, body.Data)
	})

	t.Run("binder error goes to error handler", func(t *testing.T) {
		t.Parallel()
		called := false
		h := func(ctx handler.Context, req publishRequest) handler.Response {
			called = true
			return handler.Empty()
		}

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Wrap(h, handler.WithBinder[handler.Context, publishRequest](binder.JSON()))(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("not applicable binders are skipped", func(t *testing.T) {
		t.Parallel()
		skip := func(*http.Request, any) error { return binder.ErrBinderNotApplicable }
		h := func(ctx handler.Context, req publishRequest) handler.Response {
			return handler.Empty()
		}

		w := httptest.NewRecorder()
		handler.Wrap(h, handler.WithBinders[handler.Context, publishRequest](skip))(w, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := func(ctx handler.Context, req publishRequest) handler.Response { return nil }

		handler.Wrap(h, handler.WithErrorHandler[handler.Context, publishRequest](func(ctx handler.Context, err error) {
			got = err
		}))(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, publishRequest] {
			return func(next handler.HandlerFunc[handler.Context, publishRequest]) handler.HandlerFunc[handler.Context, publishRequest] {
				return func(ctx handler.Context, req publishRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := func(ctx handler.Context, req publishRequest) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		}

		handler.Wrap(h, handler.WithDecorators(mark("outer"), mark("inner")))(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("fail renders through error handler", func(t *testing.T) {
		t.Parallel()
		h := func(ctx handler.Context, req publishRequest) handler.Response {
			return handler.Fail(handler.ErrNotFound)
		}

		w := httptest.NewRecorder()
		handler.Wrap(h)(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeEnvelope(t, w).Error.Code)
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	t.Run("client error logged at warn", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		eh := handler.NewErrorHandler(newLogger(&buf), handler.ErrorHandlerConfig{})

		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodPost, "/articles/1/status/publish", nil)), handler.ErrConflict)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), `"status_code":409`)
	})

	t.Run("internal error hidden by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		eh := handler.NewErrorHandler(newLogger(&buf), handler.ErrorHandlerConfig{})

		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), "connection reset")
	})

	t.Run("internal error exposed when configured", func(t *testing.T) {
		t.Parallel()
		eh := handler.NewErrorHandler(newLogger(&bytes.Buffer{}), handler.ErrorHandlerConfig{ExposeInternalErrors: true})

		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("connection reset"))

		assert.Equal(t, "connection reset", decodeEnvelope(t, w).Error.Message)
	})

	t.Run("binder errors map to status codes", func(t *testing.T) {
		t.Parallel()
		cases := map[error]int{
			binder.ErrUnsupportedMediaType: http.StatusUnsupportedMediaType,
			binder.ErrRequestTooLarge:      http.StatusRequestEntityTooLarge,
			binder.ErrMissingContentType:   http.StatusBadRequest,
			binder.ErrFailedToParsePath:    http.StatusBadRequest,
		}
		eh := handler.NewErrorHandler(newLogger(&bytes.Buffer{}), handler.ErrorHandlerConfig{})
		for err, code := range cases {
			w := httptest.NewRecorder()
			eh(handler.NewContext(w, httptest.NewRequest(http.MethodPost, "/", nil)), err)
			assert.Equal(t, code, w.Code, err.Error())
		}
	})
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/articles/a-1", nil)
	parent, cancel := context.WithCancel(context.WithValue(req.Context(), key{}, "a-1"))
	req = req.WithContext(parent)
	w := httptest.NewRecorder()

	ctx := handler.NewContext(w, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, "a-1", ctx.Value(key{}))
	assert.NoError(t, ctx.Err())

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestStatusResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp handler.Response
		want int
	}{
		{name: "empty", resp: handler.Empty(), want: http.StatusNoContent},
		{name: "accepted", resp: handler.Status(http.StatusAccepted), want: http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			require.NoError(t, tt.resp.Render(w, httptest.NewRequest(http.MethodPost, "/", nil)))
			assert.Equal(t, tt.want, w.Code)
			assert.Zero(t, w.Body.Len())
		})
	}
}
