package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/ghuser/newsletter/docs/swagger"
	"github.com/ghuser/newsletter/pkg/app"
	"github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/config"
	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/events"
	"github.com/ghuser/newsletter/pkg/httpx"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/telemetry"
	subscriptionApi "github.com/ghuser/newsletter/services/subscription/application/api"
)

// @title			Newsletter API
// @version		1.0
// @description	Newsletter subscriptions with email confirmation.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		log.Error("failed to register metrics", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	db, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConn, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close()
	log.Info("database pool connected")

	// The API only publishes; the forwarder moves outbox rows to their topics.
	eventBus, err := events.New(db.DB(), events.Options{Forwarder: true}, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("redis unavailable, serving reads from postgres only", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	}

	a := &app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Metrics:  metrics,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpx.Middlewares{
			Logger:    logger.Middleware(log),
			Recovery:  logger.Recovery(log),
			Sentry:    telemetry.SentryMiddleware(),
			Telemetry: telemetry.HTTPMiddleware(cfg.ServiceName),
		},
	)

	r.Get("/health_check", httpx.LivenessHandler)
	r.Get("/health", httpx.HealthHandler(healthChecks(a)))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	registerRoutes(r, a)

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// healthChecks leaves a disabled dependency as a nil interface so /health
// reports it as "disabled" instead of probing a nil pointer.
func healthChecks(a *app.Application) httpx.HealthChecks {
	checks := httpx.HealthChecks{
		"database":  a.Db,
		"event_bus": a.EventBus,
		"redis":     nil,
	}
	if a.Redis != nil {
		checks["redis"] = a.Redis
	}
	return checks
}

// registerRoutes mounts all service routes at the router root.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	subscriptionApi.SubscriptionRoutes(r, a)
}
