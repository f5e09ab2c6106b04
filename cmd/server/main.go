package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/catalog"
	ordersapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/orders"
	productionapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/production"
	quotesapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/quotes"
	salesapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/sales"
	stockapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/stock"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/cache"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/config"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/event"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/logger"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/persistence"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/handler"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/middleware"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Confeitaria backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)

	// Transaction scopes
	stockScope := persistence.NewGormStockTransactionScope(db.DB)
	catalogScope := persistence.NewGormCatalogTransactionScope(db.DB)
	productionScope := persistence.NewGormProductionTransactionScope(db.DB)
	salesScope := persistence.NewGormSalesTransactionScope(db.DB)

	// Application services
	pricing := catalogapp.PricingPolicy{
		MarkupFactor: decimal.NewFromFloat(cfg.Pricing.MarkupFactor),
		PriceEpsilon: decimal.NewFromFloat(cfg.Pricing.PriceEpsilon),
	}
	materialService := stockapp.NewMaterialService(materialRepo, stockScope)
	productService := catalogapp.NewProductService(productRepo, materialRepo, catalogScope, pricing, log)
	productionService := productionapp.NewProductionService(batchRepo, productRepo, productionScope, log)
	saleService := salesapp.NewSaleService(saleRepo, salesScope, log)
	orderService := ordersapp.NewOrderService(orderRepo, productRepo)
	quoteService := quotesapp.NewQuoteService(quoteRepo, productRepo)

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	lowStockHandler := stockapp.NewLowStockHandler(log).
		WithNotifier(stockapp.NewLoggingLowStockNotifier(log))
	eventBus.Subscribe(lowStockHandler)
	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
	)

	materialService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	productionService.SetEventPublisher(eventBus)
	saleService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	quoteService.SetEventPublisher(eventBus)

	// Calendar cache (optional)
	if cfg.Cache.Enabled {
		calendarCache, err := cache.NewRedisCalendarCache(&cfg.Redis, cfg.Cache.TTL, log)
		if err != nil {
			log.Warn("Calendar cache disabled, Redis unavailable", zap.Error(err))
		} else {
			defer func() {
				_ = calendarCache.Close()
			}()
			productionService.SetCalendarCache(calendarCache)
			saleService.SetCalendarCache(calendarCache)
			log.Info("Calendar cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID(log))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.NewRouter(engine).Register(
		handler.NewMaterialHandler(materialService),
		handler.NewProductHandler(productService),
		handler.NewProductionHandler(productionService),
		handler.NewSaleHandler(saleService),
		handler.NewOrderHandler(orderService),
		handler.NewQuoteHandler(quoteService),
	).Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
