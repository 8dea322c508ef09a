package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backupapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/backup"
	identityapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/identity"
	localtradeapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/localtrade"
	partnerapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/partner"
	reportapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/report"
	shipmentapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/shipment"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/auth"
	infrabackup "github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/backup"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/cache"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/config"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/logger"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/persistence"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/storage"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/interfaces/http/handler"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/interfaces/http/middleware"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FullTracker backend",
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	store, err := storage.NewS3ObjectStorage(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	companyRepo := persistence.NewGormShippingCompanyRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	itemRepo := persistence.NewGormShipmentItemRepository(db.DB)
	detailsRepo := persistence.NewGormShippingDetailsRepository(db.DB)
	paymentRepo := persistence.NewGormShipmentPaymentRepository(db.DB)
	allocationRepo := persistence.NewGormPaymentAllocationRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	partyPaymentRepo := persistence.NewGormPartyPaymentRepository(db.DB)
	returnCaseRepo := persistence.NewGormReturnCaseRepository(db.DB)
	backupJobRepo := persistence.NewGormBackupJobRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	idempotencyStore := cache.NewRedisIdempotencyStore(redisClient, "")
	tokenBlacklist := auth.NewRedisTokenBlacklist(redisClient)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Backup runner; jobs orphaned by a previous process get failed on boot.
	backupRunner := infrabackup.NewRunner(backupJobRepo, store, &cfg.Database, &cfg.Backup, log)
	if err := backupRunner.FailStale(context.Background()); err != nil {
		log.Warn("Failed to clean up stale backup jobs", zap.Error(err))
	}

	// Application services
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	companyService := partnerapp.NewShippingCompanyService(companyRepo, log)
	shipmentService := shipmentapp.NewShipmentService(shipmentRepo, itemRepo, detailsRepo, paymentRepo, allocationRepo, txManager, log)
	paymentService := shipmentapp.NewPaymentService(paymentRepo, allocationRepo, shipmentRepo, itemRepo, supplierRepo, companyRepo, idempotencyStore, store, txManager, log)
	partyService := localtradeapp.NewPartyService(partyRepo, invoiceRepo, partyPaymentRepo, returnCaseRepo, log)
	invoiceService := localtradeapp.NewInvoiceService(invoiceRepo, partyRepo, log)
	partyPaymentService := localtradeapp.NewPartyPaymentService(partyPaymentRepo, partyRepo, log)
	returnCaseService := localtradeapp.NewReturnCaseService(returnCaseRepo, invoiceRepo, log)
	reportService := reportapp.NewReportService(shipmentRepo, itemRepo, detailsRepo, paymentRepo, allocationRepo, log)
	backupService := backupapp.NewService(backupJobRepo, backupRunner, store, log)
	authService := identityapp.NewAuthService(cfg.Auth, jwtService, tokenBlacklist, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
		},
		Logger: log,
	}))

	engine.GET("/health", healthHandler(db))

	router.Setup(engine, router.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		Supplier:        handler.NewSupplierHandler(supplierService),
		ShippingCompany: handler.NewShippingCompanyHandler(companyService),
		Shipment:        handler.NewShipmentHandler(shipmentService),
		Payment:         handler.NewPaymentHandler(paymentService),
		Party:           handler.NewPartyHandler(partyService),
		Invoice:         handler.NewInvoiceHandler(invoiceService),
		PartyPayment:    handler.NewPartyPaymentHandler(partyPaymentService),
		ReturnCase:      handler.NewReturnCaseHandler(returnCaseService),
		Report:          handler.NewReportHandler(reportService),
		Backup:          handler.NewBackupHandler(backupService),
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

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
