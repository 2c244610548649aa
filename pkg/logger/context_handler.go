package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context. It reports false
// when the context carries nothing worth logging.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends extracted attributes to each record before passing it
// on. Extraction happens at Handle time so request-scoped values stay current.
type contextHandler struct {
	inner      slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps inner so every record also carries the attributes
// produced by extractors. Nil extractors are skipped. With no extractors left
// inner is returned unchanged.
func NewContextHandler(inner slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var kept []ContextExtractor
	for _, fn := range extractors {
		if fn != nil {
			kept = append(kept, fn)
		}
	}
	if len(kept) == 0 {
		return inner
	}
	return &contextHandler{inner: inner, extractors: kept}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		for _, fn := range h.extractors {
			if attr, ok := fn(ctx); ok {
				rec.AddAttrs(attr)
			}
		}
	}
	return h.inner.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(h.inner.WithAttrs(attrs))
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return h.derive(h.inner.WithGroup(name))
}

func (h *contextHandler) derive(inner slog.Handler) *contextHandler {
	return &contextHandler{inner: inner, extractors: h.extractors}
}
