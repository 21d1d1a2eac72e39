package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/contracthub/pkg/cache"
	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/pkg/events"
	"github.com/ghuser/contracthub/pkg/logger"
	"github.com/ghuser/contracthub/pkg/mail"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every bounded context's Routes and Subscribers function.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, request_id (and, inside consumers, queue,
// topic and event_id) are injected automatically:
//
//	app.Logger.InfoContext(ctx, "invoice order created", "original_order_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Processed    *cache.ProcessedStore // dedup markers for non-idempotent consumers; nil in api process
	Mailer       mail.Sender           // nil in api process
	SessionStore sessions.Store        // Redis-backed session store; nil in worker process
}
