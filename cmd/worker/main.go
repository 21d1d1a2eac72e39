package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/contracthub/pkg/app"
	"github.com/ghuser/contracthub/pkg/cache"
	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/pkg/events"
	"github.com/ghuser/contracthub/pkg/httpx"
	"github.com/ghuser/contracthub/pkg/logger"
	"github.com/ghuser/contracthub/pkg/mail"
	"github.com/ghuser/contracthub/pkg/scheduler"
	"github.com/ghuser/contracthub/pkg/telemetry"
	historyApi "github.com/ghuser/contracthub/services/history/application/api"
	invoiceApi "github.com/ghuser/contracthub/services/invoice/application/api"
	notificationApi "github.com/ghuser/contracthub/services/notification/application/api"
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

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid scheduler timezone", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	// On the sql transport the reminder job's events go straight to the topic
	// tables inside its transaction. On amqp the bus is in forwarder mode and
	// the API process's forwarder relays the outbox rows to RabbitMQ.
	eventBus, err := events.NewEventBus(cfg, pool.DB(), log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:    cfg,
		Db:        pool,
		Logger:    log,
		EventBus:  eventBus,
		Redis:     redisClient,
		Processed: cache.NewProcessedStore(redisClient, cfg.ProcessedEventTTL),
		Mailer:    mail.New(cfg, log),
	}

	sched := scheduler.New(log, loc)

	subCtx, cancelSubs := context.WithCancel(ctx)
	defer cancelSubs()
	if err := registerSubscribers(subCtx, appConfig, sched); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	sched.Start()
	log.Info("scheduler started", "timezone", loc.String())

	r := chi.NewRouter()
	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		"database":  pool,
		"redis":     redisClient,
		"event_bus": eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	srv := httpx.NewServer(cfg.WorkerHTTPAddr, r)
	go func() {
		log.Info("worker health listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("worker health server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error("scheduler did not stop in time", "error", err)
	}
	cancelSubs()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown of health server", "error", err)
	}

	// The bus waits for in-flight handlers, which may still use Redis.
	closeInOrder(log,
		resource{"event bus", eventBus},
		resource{"redis", redisClient},
	)
	log.Info("worker stopped")
}

// registerSubscribers checks the topology, then subscribes every binding to
// its handler and schedules the reminder job. A binding without a handler
// fails startup.
func registerSubscribers(ctx context.Context, a *app.Application, sched *scheduler.Scheduler) error {
	bindings := contracts.Bindings()
	if err := contracts.ValidateBindings(bindings); err != nil {
		return err
	}

	invoiceHandlers, err := invoiceApi.InvoiceWorker(a, sched)
	if err != nil {
		return err
	}
	handlers := map[contracts.Binding]events.Handler{}
	for _, set := range []map[contracts.Binding]events.Handler{
		invoiceHandlers,
		historyApi.HistorySubscribers(a),
		notificationApi.NotificationSubscribers(a),
	} {
		for b, h := range set {
			if _, dup := handlers[b]; dup {
				return fmt.Errorf("binding %s registered twice", b.Queue)
			}
			handlers[b] = h
		}
	}

	for _, b := range bindings {
		if _, ok := handlers[b]; !ok {
			return fmt.Errorf("no handler for binding %s", b.Queue)
		}
	}
	if len(handlers) != len(bindings) {
		return fmt.Errorf("%d handlers registered for %d bindings", len(handlers), len(bindings))
	}

	for _, b := range bindings {
		errCh, err := a.EventBus.Subscribe(ctx, b, handlers[b])
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", b.Queue, err)
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(b contracts.Binding) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"queue", b.Queue, "topic", b.Topic, "error", err)
			}
		}(b)
	}

	a.Logger.Info("event subscribers registered", "bindings", len(bindings))
	return nil
}
