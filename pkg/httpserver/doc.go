// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(pool.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled, the process receives SIGINT or SIGTERM,
// or Shutdown is called. Shutdown waits up to the configured timeout for
// in-flight requests and then runs the stop hooks.
//
// LivenessHandler and ReadinessHandler serve JSON health probes; readiness
// runs named HealthCheck functions such as pg.Probe or
// redis.Probe against the request context.
package httpserver
