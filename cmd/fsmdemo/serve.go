package main

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fsmkit"
	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/internal/article"
	"github.com/dmitrymomot/fsmkit/pkg/clientip"
	"github.com/dmitrymomot/fsmkit/pkg/config"
	"github.com/dmitrymomot/fsmkit/pkg/httpserver"
	"github.com/dmitrymomot/fsmkit/pkg/requestid"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ExposeInternalErrors: cfg.ExposeErrors,
	})

	reg, err := newArticleRegistry(cfg, be, log, errorHandler, metrics)
	if err != nil {
		be.close()
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware, middleware.Recoverer)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, be.checks))
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	}
	svc := article.NewService(be.store, nil)
	svc.AcceptDrafts(cfg.AcceptDrafts)
	article.Routes(r, svc, reg, errorHandler)

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(be.close),
	)
	return srv.Run(ctx, r)
}

func newArticleRegistry(
	cfg appConfig,
	be *backend,
	log *slog.Logger,
	errorHandler handler.ErrorHandler[handler.Context],
	metrics prometheus.Registerer,
) (*fsmkit.Registry[*article.Article], error) {
	opts := []fsmkit.Option[*article.Article]{
		fsmkit.WithLogger[*article.Article](log),
		fsmkit.WithErrorHandler[*article.Article](errorHandler),
	}
	if cfg.Index {
		opts = append(opts, fsmkit.WithTransitionIndex[*article.Article]())
	}
	if cfg.Metrics {
		opts = append(opts, fsmkit.WithMetrics[*article.Article](metrics))
	}
	return article.NewRegistry(be.store, nil, opts...)
}
