package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ormanet/lumeo-api/internal/cache"
	"github.com/ormanet/lumeo-api/internal/config"
	"github.com/ormanet/lumeo-api/internal/database"
	"github.com/ormanet/lumeo-api/internal/handler"
	"github.com/ormanet/lumeo-api/internal/middleware"
	"github.com/ormanet/lumeo-api/internal/repository"
	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
	"github.com/ormanet/lumeo-api/internal/worker"
)

// main is the application entrypoint for the Lumeo commerce API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting lumeo api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	sessionCache := cache.NewSessionCache(redisClient)
	importStatusCache := cache.NewImportStatusCache(redisClient)

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	clientRepo := repository.NewClientRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	importRepo := repository.NewImportRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 5. Initialize services
	authSvc := service.NewAuthService(userRepo, clientRepo, sessionCache)
	productSvc := service.NewProductService(productRepo)
	clientSvc := service.NewClientService(clientRepo)
	pricingSvc := service.NewPricingService(productRepo, discountRepo)
	discountSvc := service.NewDiscountService(discountRepo)
	loyaltySvc := service.NewLoyaltyService(loyaltyRepo, clientRepo)
	orderSvc := service.NewOrderService(orderRepo, cfg.Import.OrderRetentionDays)
	priceListImportSvc := service.NewPriceListImportService(productRepo, importRepo, importStatusCache)
	clientImportSvc := service.NewClientImportService(clientSvc, clientRepo, userRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, redisClient),
		Auth:    handler.NewAuthHandler(authSvc),
		Pricing: handler.NewPricingHandler(pricingSvc),
		Product: handler.NewProductHandler(productSvc, priceListImportSvc),
		Client:  handler.NewClientHandler(clientSvc, clientImportSvc),
		Loyalty: handler.NewLoyaltyHandler(loyaltySvc),
		Offer:   handler.NewOfferHandler(discountSvc),
		Order:   handler.NewOrderHandler(orderSvc),
	}

	// 7. Initialize middleware
	sessionMw := middleware.NewSessionMiddleware(authSvc)
	adminMw := middleware.NewAdminAuthMiddleware()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw, adminMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	if cfg.Import.OrdersDropDir != "" {
		go worker.NewOrderSyncWorker(orderSvc, cfg.Import.OrdersDropDir, cfg.Worker.OrderSyncInterval).Start(ctx)
	}

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Pricing *handler.PricingHandler
	Product *handler.ProductHandler
	Client  *handler.ClientHandler
	Loyalty *handler.LoyaltyHandler
	Offer   *handler.OfferHandler
	Order   *handler.OrderHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMw *middleware.SessionMiddleware, adminMw *middleware.AdminAuthMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public auth
	router.POST("/v1/auth/register", handlers.Auth.Register)
	router.POST("/v1/auth/login", handlers.Auth.Login)
	router.POST("/v1/admin/auth/login", handlers.Auth.AdminLogin)

	// Account routes (Redis-backed session)
	account := router.Group("/v1")
	account.Use(sessionMw.Handle())
	{
		account.POST("/auth/logout", handlers.Auth.Logout)
		account.GET("/auth/me", handlers.Auth.Me)
		account.POST("/auth/change-password", handlers.Auth.ChangePassword)
		account.GET("/account/orders", handlers.Order.GetAccountOrders)
		account.POST("/pricing", handlers.Pricing.ResolvePrice)
	}

	// Admin routes (JWT)
	admin := router.Group("/v1/admin")
	admin.Use(adminMw.Handle())
	{
		admin.GET("/clients", handlers.Client.GetClients)
		admin.GET("/clients/:id", handlers.Client.GetClient)
		admin.POST("/clients", handlers.Client.CreateClient)
		admin.PUT("/clients/:id", handlers.Client.UpdateClient)
		admin.DELETE("/clients/:id", handlers.Client.DeleteClient)
		admin.POST("/clients/import-promo", handlers.Client.ImportPromoClients)

		admin.POST("/loyalty/points", handlers.Loyalty.GrantPoints)
		admin.GET("/loyalty/summary", handlers.Loyalty.GetSummary)

		admin.GET("/offers", handlers.Offer.GetOffers)
		admin.GET("/offers/:offerId", handlers.Offer.GetOffer)
		admin.POST("/offers", handlers.Offer.SaveOffer)

		admin.GET("/products", handlers.Product.GetProducts)
		admin.GET("/products/:sku", handlers.Product.GetProduct)
		admin.POST("/products", handlers.Product.SaveProduct)
		admin.DELETE("/products/:sku", handlers.Product.DeleteProduct)

		admin.POST("/price-list/import", handlers.Product.ImportPriceList)
		admin.GET("/price-list/status", handlers.Product.GetImportStatus)

		admin.POST("/orders/import", handlers.Order.ImportOrders)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
