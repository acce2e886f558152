// Velora magazine scheduler
//
// Dedicated scheduler instance: polls for due articles, publishes them,
// and runs the retention sweep. Multiple instances coordinate through
// Redis leader election so only one does the work at a time. Exposes
// health and metrics on the configured HTTP port.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.velora.shop/internal/common/health"
	"go.velora.shop/internal/common/leader"
	"go.velora.shop/internal/common/lifecycle"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/magazine"
	magazineops "go.velora.shop/internal/magazine/operations"
	"go.velora.shop/internal/magazine/scheduler"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("VELORA_DEV") == "true" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Velora scheduler",
		"version", version,
		"build_time", buildTime)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, cleanup, err := lifecycle.Initialize(ctx, lifecycle.AppOptions{
		NeedsPostgres: true,
		NeedsRedis:    true,
		NeedsNATS:     true,
	})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	cfg := app.Config

	var publisher events.Publisher = events.NewNoopPublisher()
	if app.NATS != nil {
		publisher = events.NewNATSPublisher(app.NATS)
	}

	articles := magazine.NewPostgresRepository(app.Pool)
	publishDue := magazineops.NewPublishDueArticlesUseCase(articles, publisher, cfg.Magazine.BatchSize)
	archiveOld := magazineops.NewArchiveOldArticlesUseCase(articles, publisher)

	var schedLeader scheduler.Leader
	if cfg.Magazine.Leader.Enabled {
		leaderConfig := leader.DefaultConfig("velora-magazine-scheduler")
		if cfg.Magazine.Leader.InstanceID != "" {
			leaderConfig.InstanceID = cfg.Magazine.Leader.InstanceID
		}
		if cfg.Magazine.Leader.TTL > 0 {
			leaderConfig.TTL = cfg.Magazine.Leader.TTL
		}
		if cfg.Magazine.Leader.RefreshInterval > 0 {
			leaderConfig.RefreshInterval = cfg.Magazine.Leader.RefreshInterval
		}

		elector := leader.NewElector(app.Redis, leaderConfig)
		if err := elector.Start(ctx); err != nil {
			slog.Error("Failed to start leader election", "error", err)
			os.Exit(1)
		}
		defer elector.Stop()
		schedLeader = elector
	}

	sched := scheduler.New(scheduler.Config{
		PollInterval:    cfg.Magazine.PollInterval,
		ArchiveAfter:    cfg.Magazine.ArchiveAfter,
		ArchiveInterval: cfg.Magazine.ArchiveInterval,
	}, publishDue, archiveOld, schedLeader)

	healthChecker := health.NewChecker()
	healthChecker.AddReadinessCheck(health.PostgresCheck(app.Pool.Ping))
	healthChecker.AddReadinessCheck(health.RedisCheck(func(ctx context.Context) error {
		return app.Redis.Ping(ctx).Err()
	}))
	if app.NATS != nil {
		healthChecker.AddReadinessCheck(health.NATSCheck(app.NATS.IsConnected))
	}
	healthChecker.AddLivenessCheck(health.SchedulerCheck(sched.IsRunning, sched.LastPoll, 3*cfg.Magazine.PollInterval))

	// Operational endpoints only; the storefront API lives in cmd/velora.
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/q/health", healthChecker.HandleHealth)
	r.Get("/q/health/live", healthChecker.HandleLive)
	r.Get("/q/health/ready", healthChecker.HandleReady)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := lifecycle.Run(ctx,
		lifecycle.NewHTTPService("scheduler-ops", httpServer),
		sched,
	); err != nil {
		slog.Error("Shutdown with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Velora scheduler stopped")
}
