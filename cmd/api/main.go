package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/auth"
	transactionUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/transaction"
	userUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	conn, err := database.NewConnection(dbConfig, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	if err := database.Migrate(conn.DB, appLogger); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Repositories and the unit of work
	userRepo := repository.NewUserRepository(conn.DB, tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(conn.DB, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Core adapters
	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokenManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)

	// Use cases
	authService := authUseCase.NewService(userRepo, passwordHasher, tokenManager, tp, appLogger)
	userService := userUseCase.NewService(uow, userRepo, tp, appLogger)
	transactionService := transactionUseCase.NewService(uow, userRepo, transactionRepo, tp, appLogger)

	// HTTP layer
	authHandler := handler.NewAuthHandler(authService, tp, appLogger)
	userHandler := handler.NewUserHandler(userService, tp, appLogger)
	transactionHandler := handler.NewTransactionHandler(transactionService, tp, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, authService, authHandler, userHandler, transactionHandler, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}
