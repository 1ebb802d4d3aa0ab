package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/voiceshop/pkg/app"
	"github.com/ghuser/voiceshop/pkg/cache"
	"github.com/ghuser/voiceshop/pkg/config"
	"github.com/ghuser/voiceshop/pkg/events"
	"github.com/ghuser/voiceshop/pkg/logger"
	"github.com/ghuser/voiceshop/pkg/telemetry"
	appsvcs "github.com/ghuser/voiceshop/services/shop/application/services"
	"github.com/ghuser/voiceshop/services/shop/application/subscribers"
)

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

	// Events only cross processes through the Postgres-backed bus.
	if cfg.DatabaseURL == "" {
		log.Error("worker needs DATABASE_URL; without it the API handles events in-process")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	} else {
		log.Info("REDIS_URL not set, order receipts are logged without cache warming")
	}

	appConfig := &app.Application{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new services' subscribers here as they publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	var orderCache *cache.OrderCache
	if a.Redis != nil {
		orderCache = cache.NewOrderCache(a.Redis, a.Config.OrderCacheTTL)
	}
	return subscribers.Register(ctx, a.EventBus, appsvcs.NewOrderCacheWarmer(orderCache), a.Logger)
}
