package main

import (
	"context"
	"time"

	"github.com/hilthontt/powersite/internal/catalog"
	"github.com/hilthontt/powersite/internal/infrastructure/auth"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"github.com/hilthontt/powersite/internal/infrastructure/metrics"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/db"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/migration"
	"github.com/hilthontt/powersite/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/powersite/internal/infrastructure/reporting"
	"github.com/hilthontt/powersite/internal/infrastructure/tracing"
	"github.com/hilthontt/powersite/internal/presentation/api"
	authHandler "github.com/hilthontt/powersite/internal/presentation/handler/auth"
	"github.com/hilthontt/powersite/internal/presentation/handler/dashboard"
	"github.com/hilthontt/powersite/internal/presentation/handler/health"
	resourceHandler "github.com/hilthontt/powersite/internal/presentation/handler/resource"
	"github.com/hilthontt/powersite/internal/presentation/handler/respond"
	"github.com/hilthontt/powersite/internal/resource"
	"github.com/spf13/cobra"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply schema changes before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	deps, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	cfg, logger := deps.cfg, deps.logger

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName: serviceName,
		Environment: cfg.Tracing.Environment,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize the tracer: %v", err)
	}
	defer shutdownTracer(context.Background())

	reporter, err := reporting.New(reporting.Config{
		Dsn:         cfg.Sentry.Dsn,
		Environment: cfg.Sentry.Environment,
		Debug:       cfg.Debug,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize error reporting: %v", err)
	}
	defer reporter.Flush(2 * time.Second)

	if autoMigrate {
		if err := migration.Up(ctx, deps.db, logger); err != nil {
			return err
		}
	}

	registry, err := catalog.Build(deps.db,
		resource.WithPageSize(cfg.Pagination.PageSize),
		resource.WithLogger(logger),
		resource.WithTracer(tracing.GetTracer("github.com/hilthontt/powersite/internal/resource")),
	)
	if err != nil {
		return err
	}

	authenticator := auth.New(cfg.Auth)
	m := metrics.New()
	responder := respond.New(logger, reporter)

	rl := ratelimiter.New(ratelimiter.Options{
		Rate:            cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:        cfg.RateLimiter.MaxBurst,
		SourceHeaderKey: cfg.RateLimiter.SourceHeaderKey,
	})
	submitLimiter := ratelimiter.New(ratelimiter.Options{
		Rate:            cfg.RateLimiter.SubmitPerMinute,
		Per:             time.Minute,
		MaxBurst:        cfg.RateLimiter.SubmitPerMinute,
		SourceHeaderKey: cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(*cfg, api.Dependencies{
		Registry:         registry,
		ResourceHandler:  resourceHandler.NewHandler(responder, m),
		AuthHandler:      authHandler.NewHandler(authenticator, responder, logger),
		DashboardHandler: dashboard.NewHandler(registry, responder),
		HealthHandler: health.NewHandler(func(ctx context.Context) error {
			return db.Ping(ctx, deps.db)
		}),
		Logger:        logger,
		RateLimiter:   rl,
		SubmitLimiter: submitLimiter,
		Authenticator: authenticator,
		Metrics:       m,
		Reporter:      reporter,
	})

	logger.Info(logging.General, logging.Startup, "resources registered", map[logging.ExtraKey]any{
		"count": len(registry.All()),
	})

	mux := app.Mount()
	return app.Run(mux)
}
