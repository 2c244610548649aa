// Package logger builds *slog.Logger values from functional options and
// provides attribute constructors so every component names things the same
// way.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result with NewContextHandler, which runs ContextExtractor callbacks on every
// record. That is how request-scoped values such as the request id reach log
// lines without being passed around explicitly.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "fsmdemo"),
//		logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Transition handlers log with the domain attributes from attr.go:
//
//	log.InfoContext(ctx, "transition applied",
//		logger.Resource("articles"),
//		logger.ObjectID(id),
//		logger.Field("status"),
//		logger.Transition("publish"),
//		logger.StateChange("in_review", "published"),
//	)
//
// Error, RequestID and ObjectID return an empty slog.Attr for empty input,
// which slog drops, so they can be passed unconditionally.
package logger
