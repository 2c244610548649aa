// Package requestid assigns every HTTP request an identifier and carries it
// through context.Context.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
//
// Incoming X-Request-ID headers are kept when they are at most 128 characters
// of letters, digits, '-' and '_'; anything else is replaced with a new UUID.
package requestid
