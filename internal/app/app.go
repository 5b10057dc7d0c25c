package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	customMiddleware "bikeshare/internal/middleware"
	"bikeshare/internal/services"
	handlers "bikeshare/internal/transport/http"
	"bikeshare/internal/validation"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.AnalysisMetrics
	Analysis      *services.AnalysisService
	Health        *services.HealthService
	ErrorHandler  *apierrors.ErrorHandler
}

// NewAnalysisService wires the loader, selection validator and telemetry
// into an analysis service. Both the console and the web binary use it.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*services.AnalysisService, *infrastructure.AnalysisMetrics, error) {
	metrics, err := infrastructure.CreateAnalysisMetrics(providers.Meter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create analysis metrics: %w", err)
	}

	loader := dataprocessing.NewLoader(cfg.Datasets, logger)
	svc := services.NewAnalysisService(
		loader,
		validation.NewSelectionValidator(loader.Regions()),
		logger,
		services.WithTracer(providers.Tracer),
		services.WithMetrics(metrics),
	)
	return svc, metrics, nil
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("port", cfg.Server.Port),
		slog.String("data_dir", cfg.Datasets.DataDir))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromTelemetry(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	analysis, metrics, err := NewAnalysisService(cfg, logger, otelProviders)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Analysis:      analysis,
		Health:        services.NewHealthService(config.AppVersion, cfg.Datasets, logger),
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Ordering: RequestID -> RealIP -> OTel -> Logger -> Recoverer -> limits
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimitRPS,
			a.Config.Server.RateLimitBurst,
			a.Logger,
		).Handler)
		if a.Config.Server.RequestTimeout > 0 {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
		}

		r.NotFound(a.ErrorHandler.NotFound)
		r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

		a.setupAPIRoutes(r)
	})

	// Prometheus scrapes bypass logging and rate limiting
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	health := handlers.NewHealthHandler(a.Health, a.Logger)
	analysis := handlers.NewAnalysisHandler(a.Analysis, a.Logger, a.ErrorHandler)

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get(config.HealthEndpoint, health.HealthCheck)
		r.Get(config.HealthEndpoint+"/ready", health.ReadinessCheck)
		r.Get(config.HealthEndpoint+"/live", health.LivenessCheck)
		r.Get("/api/version", health.Version)
	})

	r.Mount(config.APIBasePath, analysis.Routes())
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves HTTP until ctx is cancelled or the server fails, then shuts
// down gracefully
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	a.performStartupHealthCheck(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "HTTP server listening",
			slog.String("address", listener.Addr().String()))
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// performStartupHealthCheck logs datasets that cannot be read. Missing
// datasets do not stop the server; requests for them answer 500.
func (a *Application) performStartupHealthCheck(ctx context.Context) {
	status := a.Health.ReadinessCheck(ctx)
	for _, ds := range status.Datasets {
		if !ds.Ready {
			a.Logger.WarnContext(ctx, "Dataset unavailable",
				slog.String("region", ds.Region),
				slog.String("path", ds.Path),
				slog.String("error", ds.Error))
		}
	}
}
