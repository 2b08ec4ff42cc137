// Package app holds the shared infrastructure container handed to every
// bounded context at startup.
package app

import (
	"github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/config"
	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/events"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/telemetry"
	"github.com/ghuser/newsletter/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "subscriber stored", "subscriber_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
//
// Redis and TemporalClient are nil when the dependency is disabled or
// unreachable at startup; consumers must tolerate that.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	Metrics        *telemetry.Metrics
}
