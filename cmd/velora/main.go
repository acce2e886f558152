// Velora API
//
// Multilingual e-commerce backend: storefront catalog, carts, checkout,
// customer accounts, admin back-office, and the magazine with scheduled
// publication. This binary runs the HTTP API and the magazine scheduler
// in one process; use cmd/scheduler for a dedicated scheduler instance.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.velora.shop/internal/api"
	"go.velora.shop/internal/auth"
	"go.velora.shop/internal/cart"
	cartops "go.velora.shop/internal/cart/operations"
	"go.velora.shop/internal/catalog"
	catalogops "go.velora.shop/internal/catalog/operations"
	"go.velora.shop/internal/common/health"
	"go.velora.shop/internal/common/leader"
	"go.velora.shop/internal/common/lifecycle"
	"go.velora.shop/internal/customer"
	customerops "go.velora.shop/internal/customer/operations"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/faults"
	"go.velora.shop/internal/magazine"
	magazineops "go.velora.shop/internal/magazine/operations"
	"go.velora.shop/internal/magazine/scheduler"
	"go.velora.shop/internal/order"
	orderops "go.velora.shop/internal/order/operations"
	"go.velora.shop/internal/payment"
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

	slog.Info("Starting Velora",
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

	// === Infrastructure ===

	faultManager := faults.NewManager(faults.DefaultConfig())

	var publisher events.Publisher = events.NewNoopPublisher()
	if app.NATS != nil {
		publisher = events.NewNATSPublisher(app.NATS)
	}

	provider := payment.NewClient(&payment.ClientConfig{
		BaseURL:                   cfg.Payment.BaseURL,
		APIKey:                    cfg.Payment.APIKey,
		Timeout:                   cfg.Payment.Timeout,
		MaxRetries:                cfg.Payment.MaxRetries,
		BaseBackoff:               cfg.Payment.BaseBackoff,
		CircuitBreakerEnabled:     true,
		CircuitBreakerRequests:    5,
		CircuitBreakerInterval:    60 * time.Second,
		CircuitBreakerRatio:       0.5,
		CircuitBreakerTimeout:     10 * time.Second,
		CircuitBreakerMinRequests: 5,
	})

	// === Repositories ===

	products := catalog.NewPostgresRepository(app.Pool)
	orders := order.NewPostgresRepository(app.Pool)
	customers := customer.NewPostgresRepository(app.Pool)
	articles := magazine.NewPostgresRepository(app.Pool)
	carts := cart.NewRedisStore(app.Redis, cfg.Redis.CartTTL)

	// === Auth ===

	passwords := customer.NewPasswordService()
	if cfg.Auth.BcryptCost > 0 {
		passwords = customer.NewPasswordServiceWithCost(cfg.Auth.BcryptCost)
	}

	tokens := auth.NewTokenService(auth.TokenServiceConfig{
		Issuer:             cfg.Auth.JWT.Issuer,
		Secret:             cfg.Auth.JWT.Secret,
		SessionTokenExpiry: cfg.Auth.JWT.SessionTokenExpiry,
	})

	sessionConfig := auth.DefaultSessionConfig()
	if cfg.Auth.Session.CookieName != "" {
		sessionConfig.CookieName = cfg.Auth.Session.CookieName
	}
	sessionConfig.Secure = cfg.Auth.Session.Secure
	sessionConfig.SameSite = auth.ParseSameSite(cfg.Auth.Session.SameSite)
	sessionConfig.MaxAge = cfg.Auth.JWT.SessionTokenExpiry
	sessions := auth.NewSessionManager(sessionConfig)

	// === Magazine scheduler ===

	publishDue := magazineops.NewPublishDueArticlesUseCase(articles, publisher, cfg.Magazine.BatchSize)
	archiveOld := magazineops.NewArchiveOldArticlesUseCase(articles, publisher)

	var elector *leader.Elector
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

		elector = leader.NewElector(app.Redis, leaderConfig)
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

	// === Health ===

	healthChecker := health.NewChecker()
	healthChecker.AddReadinessCheck(health.PostgresCheck(app.Pool.Ping))
	healthChecker.AddReadinessCheck(health.RedisCheck(func(ctx context.Context) error {
		return app.Redis.Ping(ctx).Err()
	}))
	if app.NATS != nil {
		healthChecker.AddReadinessCheck(health.NATSCheck(app.NATS.IsConnected))
	}
	healthChecker.AddLivenessCheck(health.SchedulerCheck(sched.IsRunning, sched.LastPoll, 3*cfg.Magazine.PollInterval))

	// === HTTP API ===

	server := api.NewServer(api.Dependencies{
		CreateProduct: catalogops.NewCreateProductUseCase(products),
		UpdateProduct: catalogops.NewUpdateProductUseCase(products),
		ListProducts:  catalogops.NewListProductsUseCase(products),
		GetProduct:    catalogops.NewGetProductUseCase(products),
		AdjustStock:   catalogops.NewAdjustStockUseCase(products),

		GetCart:    cartops.NewGetCartUseCase(carts),
		AddItem:    cartops.NewAddItemUseCase(carts, products),
		UpdateItem: cartops.NewUpdateItemUseCase(carts, products),
		ClearCart:  cartops.NewClearCartUseCase(carts),

		PlaceOrder:  orderops.NewPlaceOrderUseCase(orders, carts, products, publisher),
		PayOrder:    orderops.NewPayOrderUseCase(orders, provider, publisher),
		CancelOrder: orderops.NewCancelOrderUseCase(orders, products, provider, publisher),
		GetOrder:    orderops.NewGetOrderUseCase(orders),
		ListOrders:  orderops.NewListOrdersUseCase(orders),

		Register:     customerops.NewRegisterUseCase(customers, passwords, publisher),
		Authenticate: customerops.NewAuthenticateUseCase(customers, passwords),

		CreateArticle:   magazineops.NewCreateArticleUseCase(articles),
		UpdateArticle:   magazineops.NewUpdateArticleUseCase(articles),
		ScheduleArticle: magazineops.NewScheduleArticleUseCase(articles),
		CancelSchedule:  magazineops.NewCancelScheduleUseCase(articles),
		PublishNow:      magazineops.NewPublishNowUseCase(articles, publisher),
		GetArticle:      magazineops.NewGetArticleUseCase(articles),
		ListArticles:    magazineops.NewListArticlesUseCase(articles),

		Sessions: sessions,
		Tokens:   tokens,

		Faults: faultManager,
		Health: healthChecker,
	})

	httpServer := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: server.Router(api.Options{
			CORSOrigins:    cfg.HTTP.CORSOrigins,
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := lifecycle.Run(ctx,
		lifecycle.NewHTTPService("velora-api", httpServer),
		sched,
	); err != nil {
		slog.Error("Shutdown with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Velora stopped")
}
