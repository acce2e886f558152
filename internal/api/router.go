package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.velora.shop/internal/auth"
	cartops "go.velora.shop/internal/cart/operations"
	catalogops "go.velora.shop/internal/catalog/operations"
	"go.velora.shop/internal/common/health"
	customerops "go.velora.shop/internal/customer/operations"
	"go.velora.shop/internal/faults"
	magazineops "go.velora.shop/internal/magazine/operations"
	orderops "go.velora.shop/internal/order/operations"
)

// Dependencies carries everything the HTTP surface needs
type Dependencies struct {
	// Catalog
	CreateProduct *catalogops.CreateProductUseCase
	UpdateProduct *catalogops.UpdateProductUseCase
	ListProducts  *catalogops.ListProductsUseCase
	GetProduct    *catalogops.GetProductUseCase
	AdjustStock   *catalogops.AdjustStockUseCase

	// Cart
	GetCart    *cartops.GetCartUseCase
	AddItem    *cartops.AddItemUseCase
	UpdateItem *cartops.UpdateItemUseCase
	ClearCart  *cartops.ClearCartUseCase

	// Orders
	PlaceOrder  *orderops.PlaceOrderUseCase
	PayOrder    *orderops.PayOrderUseCase
	CancelOrder *orderops.CancelOrderUseCase
	GetOrder    *orderops.GetOrderUseCase
	ListOrders  *orderops.ListOrdersUseCase

	// Customers
	Register     *customerops.RegisterUseCase
	Authenticate *customerops.AuthenticateUseCase

	// Magazine
	CreateArticle   *magazineops.CreateArticleUseCase
	UpdateArticle   *magazineops.UpdateArticleUseCase
	ScheduleArticle *magazineops.ScheduleArticleUseCase
	CancelSchedule  *magazineops.CancelScheduleUseCase
	PublishNow      *magazineops.PublishNowUseCase
	GetArticle      *magazineops.GetArticleUseCase
	ListArticles    *magazineops.ListArticlesUseCase

	// Auth
	Sessions *auth.SessionManager
	Tokens   *auth.TokenService

	// Infrastructure
	Faults *faults.Manager
	Health *health.Checker
}

// Options tunes the outer middleware stack
type Options struct {
	CORSOrigins []string

	// RateLimitRPS per client IP (0 disables limiting)
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server is the HTTP API
type Server struct {
	deps Dependencies
	auth *auth.Middleware
}

// NewServer creates the API server
func NewServer(deps Dependencies) *Server {
	return &Server{
		deps: deps,
		auth: auth.NewMiddleware(deps.Sessions, deps.Tokens),
	}
}

// Router builds the chi router with the full route tree
func (s *Server) Router(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(recoverer(s.deps.Faults))
	r.Use(requestLogger)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if opts.RateLimitRPS > 0 {
		r.Use(newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).middleware)
	}

	// Operational endpoints
	r.Handle("/metrics", promhttp.Handler())
	if s.deps.Health != nil {
		r.Get("/q/health", s.deps.Health.HandleHealth)
		r.Get("/q/health/live", s.deps.Health.HandleLive)
		r.Get("/q/health/ready", s.deps.Health.HandleReady)
	}

	r.Route("/api", func(r chi.Router) {
		// Storefront
		r.Get("/products", s.handleListProducts)
		r.Get("/products/{slug}", s.handleGetProduct)
		r.Get("/magazine", s.handleListArticles)
		r.Get("/magazine/{slug}", s.handleGetArticle)

		// Cart
		r.Get("/cart", s.handleGetCart)
		r.Post("/cart/items", s.handleAddItem)
		r.Put("/cart/items/{productID}", s.handleUpdateItem)
		r.Delete("/cart", s.handleClearCart)

		// Account
		r.Post("/account/register", s.handleRegister)
		r.Post("/account/login", s.handleLogin)
		r.Post("/account/logout", s.handleLogout)
		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAuth)
			r.Get("/account/me", s.handleMe)
			r.Get("/account/orders", s.handleMyOrders)
			r.Get("/account/orders/{orderID}", s.handleMyOrder)

			// Checkout
			r.Post("/checkout", s.handleCheckout)
			r.Post("/orders/{orderID}/pay", s.handlePayOrder)
			r.Post("/orders/{orderID}/cancel", s.handleCancelOrder)
		})

		// Admin back-office
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)

			r.Get("/products", s.handleAdminListProducts)
			r.Post("/products", s.handleAdminCreateProduct)
			r.Get("/products/{slug}", s.handleAdminGetProduct)
			r.Put("/products/{productID}", s.handleAdminUpdateProduct)
			r.Post("/products/{productID}/stock", s.handleAdminAdjustStock)

			r.Get("/articles", s.handleAdminListArticles)
			r.Post("/articles", s.handleAdminCreateArticle)
			r.Get("/articles/{slug}", s.handleAdminGetArticle)
			r.Put("/articles/{articleID}", s.handleAdminUpdateArticle)
			r.Post("/articles/{articleID}/schedule", s.handleAdminScheduleArticle)
			r.Post("/articles/{articleID}/cancel-schedule", s.handleAdminCancelSchedule)
			r.Post("/articles/{articleID}/publish", s.handleAdminPublishNow)

			r.Get("/orders", s.handleAdminListOrders)
			r.Get("/orders/{orderID}", s.handleAdminGetOrder)

			r.Get("/faults", s.handleAdminFaultLog)
		})
	})

	return r
}
