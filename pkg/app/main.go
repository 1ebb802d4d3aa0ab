package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/voiceshop/pkg/cache"
	"github.com/ghuser/voiceshop/pkg/config"
	"github.com/ghuser/voiceshop/pkg/database"
	"github.com/ghuser/voiceshop/pkg/events"
	"github.com/ghuser/voiceshop/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Db and Redis are optional: nil when DATABASE_URL or REDIS_URL is unset.
// Services must degrade (file snapshots, cookie sessions, no cache) rather
// than fail when they are missing.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "order created", "order_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store // Redis or cookie backed; nil in worker process
}
