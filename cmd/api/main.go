package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/voiceshop/pkg/app"
	"github.com/ghuser/voiceshop/pkg/cache"
	"github.com/ghuser/voiceshop/pkg/config"
	"github.com/ghuser/voiceshop/pkg/database"
	"github.com/ghuser/voiceshop/pkg/events"
	"github.com/ghuser/voiceshop/pkg/httpx"
	"github.com/ghuser/voiceshop/pkg/logger"
	"github.com/ghuser/voiceshop/pkg/session"
	"github.com/ghuser/voiceshop/pkg/telemetry"
	shopApi "github.com/ghuser/voiceshop/services/shop/application/api"
	appsvcs "github.com/ghuser/voiceshop/services/shop/application/services"
	"github.com/ghuser/voiceshop/services/shop/application/subscribers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	var pool *database.Database
	if cfg.DatabaseURL != "" {
		pool, err = database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer pool.Close()
		log.Info("database pool connected")
	}

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if eventBus.Durable() {
		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	}

	sessionStore := newSessionStore(cfg, redisClient, log)

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
	}

	svcs, err := appsvcs.New(ctx, appConfig)
	if err != nil {
		log.Error("failed to initialize shop services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// Without a durable bus no worker can see our events; handle them here.
	if !eventBus.Durable() {
		if err := subscribers.Register(ctx, eventBus, svcs.Orders, log); err != nil {
			log.Error("failed to register subscribers", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(healthChecks(pool, redisClient, eventBus, svcs.Store)))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment,
			"snapshot_backend", cfg.SnapshotBackend, "durable_events", eventBus.Durable())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	cancel()
	log.Info("server stopped")
}

// newSessionStore keeps sessions in Redis when configured, otherwise in the
// encrypted cookie itself.
func newSessionStore(cfg *config.Config, redisClient *cache.RedisClient, log logger.Logger) sessions.Store {
	opts := session.Options{
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.Environment == config.EnvProduction,
	}
	if redisClient != nil {
		log.Info("session store initialized", "backend", "redis")
		return session.NewRedisStore(
			redisClient.Client(),
			[]byte(cfg.SessionAuthKey),
			[]byte(cfg.SessionEncryptionKey),
			opts,
		)
	}
	log.Info("session store initialized", "backend", "cookie")
	return session.NewCookieStore([]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), opts)
}

// healthChecks reports unconfigured dependencies as disabled. Typed nil
// pointers must not reach the map: they would be non-nil interfaces.
func healthChecks(
	pool *database.Database,
	redisClient *cache.RedisClient,
	eventBus *events.EventBus,
	store appsvcs.SnapshotStore,
) httpx.HealthChecks {
	checks := httpx.HealthChecks{
		"database":       nil,
		"redis":          nil,
		"event_bus":      eventBus,
		"snapshot_store": store,
	}
	if pool != nil {
		checks["database"] = pool
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}
	return checks
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	shopApi.ShopRoutes(r, a, svcs)
}
