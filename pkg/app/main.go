package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/trendforge/pkg/cache"
	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/database"
	"github.com/ghuser/trendforge/pkg/events"
	"github.com/ghuser/trendforge/pkg/logger"
	"github.com/ghuser/trendforge/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registrations during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing trend", "trend", name)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store // Redis-backed session store; nil in worker process
}
