package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/powersite/internal/infrastructure/auth"
	"github.com/hilthontt/powersite/internal/infrastructure/configs"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"github.com/hilthontt/powersite/internal/infrastructure/metrics"
	"github.com/hilthontt/powersite/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/powersite/internal/infrastructure/reporting"
	authHandler "github.com/hilthontt/powersite/internal/presentation/handler/auth"
	dashboardHandler "github.com/hilthontt/powersite/internal/presentation/handler/dashboard"
	healthHandler "github.com/hilthontt/powersite/internal/presentation/handler/health"
	resourceHandler "github.com/hilthontt/powersite/internal/presentation/handler/resource"
	"github.com/hilthontt/powersite/internal/resource"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "powersite-api"

type Application struct {
	config           configs.Config
	registry         *resource.Registry
	resourceHandler  *resourceHandler.Handler
	authHandler      *authHandler.Handler
	dashboardHandler *dashboardHandler.Handler
	healthHandler    *healthHandler.Handler
	logger           logging.Logger
	ratelimiter      ratelimiter.Limiter
	submitLimiter    ratelimiter.Limiter
	authenticator    *auth.Authenticator
	metrics          *metrics.Metrics
	reporter         *reporting.Reporter
}

type Dependencies struct {
	Registry         *resource.Registry
	ResourceHandler  *resourceHandler.Handler
	AuthHandler      *authHandler.Handler
	DashboardHandler *dashboardHandler.Handler
	HealthHandler    *healthHandler.Handler
	Logger           logging.Logger
	RateLimiter      ratelimiter.Limiter
	SubmitLimiter    ratelimiter.Limiter
	Authenticator    *auth.Authenticator
	Metrics          *metrics.Metrics
	Reporter         *reporting.Reporter
}

func NewApplication(config configs.Config, deps Dependencies) *Application {
	return &Application{
		config:           config,
		registry:         deps.Registry,
		resourceHandler:  deps.ResourceHandler,
		authHandler:      deps.AuthHandler,
		dashboardHandler: deps.DashboardHandler,
		healthHandler:    deps.HealthHandler,
		logger:           deps.Logger,
		ratelimiter:      deps.RateLimiter,
		submitLimiter:    deps.SubmitLimiter,
		authenticator:    deps.Authenticator,
		metrics:          deps.Metrics,
		reporter:         deps.Reporter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	if app.reporter != nil {
		r.Use(app.reporter.Middleware)
	}
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.StripSlashes)

	r.Use(app.enableCors)
	r.Use(app.prometheusMiddleware)

	r.Get("/healthz", app.healthHandler.GetHealth)
	r.Get("/ready", app.healthHandler.GetReady)
	r.Get("/live", app.healthHandler.GetHealth)
	r.Handle("/metrics", app.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(app.rateLimiterMiddleware)
		r.Use(app.authenticate)
		r.Use(app.submitLimiterMiddleware)

		r.Get("/health", app.healthHandler.GetHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", app.authHandler.CreateToken)
			r.Get("/me", app.authHandler.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", app.dashboardHandler.GetDashboard)
			r.Get("/resources", app.dashboardHandler.ListDescriptors)
		})

		for _, res := range app.registry.All() {
			r.Mount("/"+res.Name(), app.resourceHandler.Routes(res))
		}
	})

	return otelhttp.NewHandler(r, serviceName)
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.Addr(),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.healthHandler.SetHealthy(false)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
