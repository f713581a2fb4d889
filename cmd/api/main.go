package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maison-heritage-store/internal/auth"
	"maison-heritage-store/internal/client"
	"maison-heritage-store/internal/config"
	"maison-heritage-store/internal/events"
	"maison-heritage-store/internal/handler"
	"maison-heritage-store/internal/payment"
	"maison-heritage-store/internal/repository"
	"maison-heritage-store/internal/server"
	"maison-heritage-store/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitDB(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	attemptRepo := repository.NewPaymentAttemptRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	adminLogRepo := repository.NewAdminLogRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	manager := payment.NewManager(logger,
		payment.NewStripeProvider(stripeClient),
		payment.NewRazorpayProvider(razorpayClient),
		payment.NewPaypalProvider(),
	)

	producer := events.NewProducer(&cfg.Kafka, logger)
	defer producer.Close()

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	catalogService := service.NewCatalogService(productRepo, reviewRepo, logger)
	checkoutService := service.NewCheckoutService(
		db,
		attemptRepo,
		orderRepo,
		productRepo,
		newsletterRepo,
		manager,
		cfg.Razorpay.KeyID,
		producer,
		logger,
	)
	userService := service.NewUserService(userRepo, orderRepo, wishlistRepo, jwtService, logger)
	adminService := service.NewAdminService(orderRepo, productRepo, userRepo, adminLogRepo, logger)

	srv := server.NewServer(jwtService, server.Handlers{
		Catalog:    handler.NewCatalogHandler(catalogService),
		Cart:       handler.NewCartHandler(cartRepo, catalogService, logger),
		Checkout:   handler.NewCheckoutHandler(checkoutService, cartRepo, logger),
		Auth:       handler.NewAuthHandler(userService),
		Chat:       handler.NewChatHandler(catalogService),
		Admin:      handler.NewAdminHandler(adminService, catalogService),
		Webhook:    handler.NewWebhookHandler(cfg.Stripe.WebhookSecret, webhookEventRepo, logger),
		Newsletter: handler.NewNewsletterHandler(newsletterRepo),
	})

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func newLogger(logCfg *config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logCfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if logCfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
