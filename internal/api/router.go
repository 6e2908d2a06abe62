package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/arquifreelas/marketplace-api/docs"
	"github.com/arquifreelas/marketplace-api/internal/api/handler"
	"github.com/arquifreelas/marketplace-api/internal/api/middleware"
	"github.com/arquifreelas/marketplace-api/internal/core/service"
	"github.com/arquifreelas/marketplace-api/internal/infrastructure/billing"
	mongodb "github.com/arquifreelas/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/arquifreelas/marketplace-api/internal/infrastructure/db/redis"
	"github.com/arquifreelas/marketplace-api/internal/infrastructure/identity"
	"github.com/arquifreelas/marketplace-api/internal/pkg/config"
	"github.com/arquifreelas/marketplace-api/pkg/logger"
)

// NewRouter builds the Echo instance with every route registered.
func NewRouter(cfg *config.Config, client *mongo.Client, db *mongo.Database, rdb *redis.Client) (*echo.Echo, error) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.AllowDebug)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	e.Use(middleware.Session(middleware.SessionConfig{
		Secret: cfg.SessionSecret,
		TTL:    sessionTTL,
	}))

	// --- Repositories ---
	profileRepo := mongodb.NewProfileRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	invoiceRepo := mongodb.NewInvoiceRepository(db)
	uploadStore, err := mongodb.NewUploadStore(db, cfg.SiteURL)
	if err != nil {
		return nil, err
	}

	// --- Providers ---
	idp := identity.NewProvider(identity.Config{
		ProviderName: cfg.OAuth.Provider,
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		AuthURL:      cfg.OAuth.AuthURL,
		TokenURL:     cfg.OAuth.TokenURL,
		UserInfoURL:  cfg.OAuth.UserInfoURL,
		RedirectURL:  cfg.OAuth.RedirectURL,
	})
	stripeProvider := billing.NewStripeProvider(billing.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		SiteURL:       cfg.SiteURL,
	})
	dedup := redisdb.NewEventDedup(rdb)

	// --- Services ---
	authService := service.NewAuthService(profileRepo, idp, cfg.SessionSecret, sessionTTL)
	projectService := service.NewProjectService(projectRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, log)
	overviewService := service.NewOverviewService(profileRepo, projectRepo, invoiceRepo, log)
	billingService := service.NewBillingService(profileRepo, stripeProvider, dedup, log)
	uploadService := service.NewUploadService(uploadStore, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, idp, sessionTTL)
	projectHandler := handler.NewProjectHandler(projectService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, cfg.SiteURL)
	adminHandler := handler.NewAdminHandler(overviewService, profileRepo, cfg.EnableDBSeed, cfg.SeedToken, cfg.AllowDebug, log)
	billingHandler := handler.NewBillingHandler(billingService, stripeProvider, log)
	uploadHandler := handler.NewUploadHandler(uploadService, uploadStore)
	healthHandler := handler.NewHealthHandler(client, rdb)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/oauth", authHandler.StartOAuth)
	e.GET("/auth/callback", authHandler.Callback)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Authenticated API ---
	authed := e.Group("/api", middleware.RequireSession())
	authed.GET("/me", authHandler.Me)
	authed.POST("/projects", projectHandler.Create)
	authed.POST("/uploads", uploadHandler.Upload)
	authed.POST("/stripe/create-checkout", billingHandler.CreateCheckout)
	authed.GET("/invoices/:id", invoiceHandler.Get)

	// --- Public API ---
	e.GET("/api/projects", projectHandler.List)
	e.GET("/api/projects/:id", projectHandler.Get)
	e.GET("/api/uploads/:id", uploadHandler.Download)
	e.GET("/api/invoices/:id/qr", invoiceHandler.QR)
	e.POST("/api/stripe/webhook", billingHandler.Webhook)

	// --- Admin API ---
	admin := e.Group("/api/admin", middleware.RequireAdmin(authService))
	admin.GET("/overview", adminHandler.Overview)
	admin.GET("/invoices/list", invoiceHandler.List)
	admin.POST("/invoices", invoiceHandler.Create)
	admin.POST("/invoices/:id/pay", invoiceHandler.MarkPaid)

	// Seeding bypasses the role check: it is how the first admin is created.
	// It is gated by its own token instead.
	e.POST("/api/admin/seed-admins", adminHandler.SeedAdmins)

	// --- Operational endpoints ---
	e.GET("/api/debug/env", adminHandler.DebugEnv)
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
