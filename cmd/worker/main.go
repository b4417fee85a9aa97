package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/trendforge/pkg/app"
	"github.com/ghuser/trendforge/pkg/cache"
	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/database"
	"github.com/ghuser/trendforge/pkg/events"
	"github.com/ghuser/trendforge/pkg/logger"
	"github.com/ghuser/trendforge/pkg/telemetry"
	"github.com/ghuser/trendforge/services/idea/application/consumers"
	ideasvcs "github.com/ghuser/trendforge/services/idea/application/services"
	pipeline "github.com/ghuser/trendforge/services/shared/events"
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

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	// Forwarder mode so the consumer's save-and-publish transaction lands in
	// the outbox; the forwarder daemon delivers to the real topic.
	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
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
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all pipeline event handlers:
//   - trend.discovered            → the idea generation consumer (pipeline core)
//   - idea.generated              → Redis read-model cache warmer
//   - trend.discovered.deadletter → poisoned-message logger for manual follow-up
func registerSubscribers(ctx context.Context, a *app.Application) error {
	svcs := ideasvcs.New(a)
	trendConsumer := consumers.NewTrendConsumer(svcs.Idea, a.Logger)

	subscriptions := map[string]func(context.Context, *message.Message) error{
		pipeline.TopicTrendDiscovered: trendConsumer.Handle,
		pipeline.TopicIdeaGenerated:   handleIdeaGenerated(a),
		pipeline.DeadLetterTopic(pipeline.TopicTrendDiscovered): handleDeadLetter(a),
	}

	topics := make([]string, 0, len(subscriptions))
	for topic, handler := range subscriptions {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		topics = append(topics, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleIdeaGenerated returns a handler for idea.generated events.
// Handlers must be idempotent — the bus may redeliver.
// Warms the Redis trend pointer so every worker's idempotency pre-check can
// skip the database for already-processed trends. The full content hash is
// only written by the idea service itself (the event payload is the wire
// contract and does not carry every artifact field).
func handleIdeaGenerated(a *app.Application) func(context.Context, *message.Message) error {
	ideaCache := cache.NewIdeaCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt pipeline.GameIdeaGeneratedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return events.Permanent(err)
		}

		if err := ideaCache.SetTrendPointer(ctx, evt.TrendName, evt.GameID); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for idea.generated",
				"game_id", evt.GameID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"game_id", evt.GameID, "trend", evt.TrendName)
		}

		return nil
	}
}

// handleDeadLetter returns a handler that surfaces poisoned messages in the
// logs (with the original trend payload) for manual follow-up.
func handleDeadLetter(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		a.Logger.ErrorContext(ctx, "dead-lettered message",
			"message_id", msg.UUID,
			"original_topic", msg.Metadata.Get("deadletter_original_topic"),
			"reason", msg.Metadata.Get("deadletter_reason"),
			"dead_lettered_at", msg.Metadata.Get("deadletter_at"),
			"payload", string(msg.Payload),
		)
		return nil
	}
}
