package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simplebank/backend/docs"
	"github.com/simplebank/backend/internal/audit"
	"github.com/simplebank/backend/internal/config"
	"github.com/simplebank/backend/internal/database"
	"github.com/simplebank/backend/internal/events"
	"github.com/simplebank/backend/internal/idempotency"
	"github.com/simplebank/backend/internal/ledger"
	"github.com/simplebank/backend/internal/logger"
	"github.com/simplebank/backend/internal/services"
	"github.com/simplebank/backend/internal/store"
	"go.uber.org/zap"
)

// @title Simple Bank Ledger API
// @version 1.0
// @description Funds transfer engine over an account ledger
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	configErr := config.BindEnv()
	cfg := config.Load()

	log, err := logger.Init(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if configErr != nil {
		logger.Infof("Config file not found, using environment and defaults: %v", configErr)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	// Storage
	var st ledger.Store
	switch cfg.StoreDriver {
	case "memory":
		logger.Warnf("Using in-memory store; balances are lost on restart")
		st = store.NewMemoryStore()
	default:
		db := database.InitDatabase()
		defer db.Close()
		st = store.NewPostgresStore(db, cfg.Ledger.LockTimeout)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	engine := ledger.NewEngine(st,
		ledger.WithLogger(log.Named("ledger")),
		ledger.WithAuditor(audit.NewLogger(log)),
		ledger.WithRetries(cfg.Ledger.MaxRetries, cfg.Ledger.RetryBackoff),
	)

	transactionService := services.NewTransactionService(
		engine,
		idempotency.NewStore(redisClient, cfg.IdempotencyTTL),
		events.NewQueue(redisClient, events.DefaultQueue),
	)
	accountService := services.NewAccountService(engine)

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		logger.Warnf("JWT_SECRET_KEY is empty; protected account routes will reject every request")
	}

	r := newRouter(routerDeps{
		transactions:   transactionService,
		accounts:       accountService,
		jwtSecret:      cfg.JWTSecret,
		authEnabled:    cfg.AuthEnabled,
		requestTimeout: 60 * time.Second,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Server starting", zap.String("addr", server.Addr), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
