package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"go.velora.shop/internal/config"
)

// App holds initialized infrastructure that is guaranteed to be connected.
// If you have an *App, the stores it was asked to initialize are reachable.
//
// This is NOT a god object - it only holds the infrastructure that needs
// connection and cleanup logic. Application wiring stays in the binaries.
type App struct {
	Config *config.Config

	// Postgres connection pool (catalog, orders, customers, magazine)
	Pool *pgxpool.Pool

	// Redis client (cart store, leader election)
	Redis *redis.Client

	// NATS connection (domain events), nil unless events type is "nats"
	NATS *nats.Conn

	cleanupFuncs []func() error
}

// AppOptions configures which infrastructure to initialize.
type AppOptions struct {
	NeedsPostgres bool
	NeedsRedis    bool
	NeedsNATS     bool
}

// Initialize creates an App with connected infrastructure.
// Returns an error if any required connection fails.
//
// Usage:
//
//	app, cleanup, err := lifecycle.Initialize(ctx, lifecycle.AppOptions{
//	    NeedsPostgres: true,
//	    NeedsRedis:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
func Initialize(ctx context.Context, opts AppOptions) (*App, func(), error) {
	app := &App{}

	cfg, err := config.LoadWithFile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	if opts.NeedsPostgres {
		if err := app.initPostgres(ctx); err != nil {
			app.Cleanup()
			return nil, nil, err
		}
	}

	if opts.NeedsRedis {
		if err := app.initRedis(ctx); err != nil {
			app.Cleanup()
			return nil, nil, err
		}
	}

	if opts.NeedsNATS && cfg.Events.Type == "nats" {
		if err := app.initNATS(); err != nil {
			app.Cleanup()
			return nil, nil, err
		}
	}

	cleanup := func() {
		app.Cleanup()
	}

	return app, cleanup, nil
}

// AddCleanup registers a cleanup function to be called on shutdown.
// Functions are called in reverse order of registration.
func (app *App) AddCleanup(fn func() error) {
	app.cleanupFuncs = append(app.cleanupFuncs, fn)
}

func (app *App) initPostgres(ctx context.Context) error {
	cfg := app.Config

	slog.Info("Connecting to Postgres")

	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("failed to parse postgres url: %w", err)
	}
	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.Postgres.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	app.Pool = pool
	app.AddCleanup(func() error {
		slog.Info("Closing Postgres pool")
		pool.Close()
		return nil
	})

	slog.Info("Connected to Postgres")
	return nil
}

func (app *App) initRedis(ctx context.Context) error {
	cfg := app.Config

	slog.Info("Connecting to Redis", "addr", cfg.Redis.Addr)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	app.Redis = client
	app.AddCleanup(func() error {
		slog.Info("Closing Redis client")
		return client.Close()
	})

	slog.Info("Connected to Redis")
	return nil
}

func (app *App) initNATS() error {
	cfg := app.Config

	slog.Info("Connecting to NATS", "url", cfg.Events.NATS.URL)

	conn, err := nats.Connect(cfg.Events.NATS.URL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	app.NATS = conn
	app.AddCleanup(func() error {
		slog.Info("Draining NATS connection")
		return conn.Drain()
	})

	slog.Info("Connected to NATS")
	return nil
}

// Cleanup runs all cleanup functions in reverse order.
func (app *App) Cleanup() {
	for i := len(app.cleanupFuncs) - 1; i >= 0; i-- {
		if err := app.cleanupFuncs[i](); err != nil {
			slog.Error("Cleanup error", "error", err)
		}
	}
}
