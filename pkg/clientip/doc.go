// Package clientip resolves the client address of HTTP requests and carries
// it in the request context for logging.
//
//	r.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LogExtractor()))
package clientip
