package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	billingapp "github.com/medsupply/backend/internal/application/billing"
	cartapp "github.com/medsupply/backend/internal/application/cart"
	catalogapp "github.com/medsupply/backend/internal/application/catalog"
	identityapp "github.com/medsupply/backend/internal/application/identity"
	inventoryapp "github.com/medsupply/backend/internal/application/inventory"
	domaincart "github.com/medsupply/backend/internal/domain/cart"
	"github.com/medsupply/backend/internal/infrastructure/auth"
	"github.com/medsupply/backend/internal/infrastructure/cartstore"
	"github.com/medsupply/backend/internal/infrastructure/config"
	"github.com/medsupply/backend/internal/infrastructure/event"
	"github.com/medsupply/backend/internal/infrastructure/logger"
	"github.com/medsupply/backend/internal/infrastructure/persistence"
	"github.com/medsupply/backend/internal/interfaces/http/handler"
	"github.com/medsupply/backend/internal/interfaces/http/middleware"
	"github.com/medsupply/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting medsupply backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txRepo := persistence.NewGormPaymentTransactionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Cart store: Redis when reachable, in-memory otherwise. Carts are
	// best-effort state, so a missing Redis degrades instead of aborting.
	var cartStore domaincart.Store
	redisStore, err := cartstore.NewRedisStore(cfg.Redis, cfg.Cart.TTL)
	if err != nil {
		log.Warn("Redis unavailable, carts held in process memory only", zap.Error(err))
		cartStore = cartstore.NewMemoryStore(cfg.Cart.TTL)
	} else {
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		cartStore = redisStore
		log.Info("Cart store connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	lowStockHandler := inventoryapp.NewLowStockAlertHandler(log)
	eventBus.Subscribe(lowStockHandler)
	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, log)
	cartService := cartapp.NewCartService(cartStore, productRepo, log)
	stockService := inventoryapp.NewStockService(productRepo, movementRepo, log)
	stockService.SetEventPublisher(eventBus)
	checkoutService := billingapp.NewCheckoutService(orderRepo, cartStore, stockService, log)
	paymentService := billingapp.NewPaymentService(orderRepo, txRepo, log)

	// HTTP layer
	middleware.SetupValidator()
	engine := router.New(cfg, log, jwtService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Cart:    handler.NewCartHandler(cartService),
		Stock:   handler.NewStockHandler(stockService),
		Order:   handler.NewOrderHandler(checkoutService, paymentService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
