package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/auth"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authService *auth.Service,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	transactionHandler *handler.TransactionHandler,
	logger coreport.Logger,
) {
	requireAuth := middleware.Auth(authService, logger)

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/profile", requireAuth, authHandler.Profile)
	}

	userRoutes := api.Group("/users", requireAuth)
	{
		userRoutes.GET("/profile", userHandler.GetProfile)
		userRoutes.PUT("/profile", userHandler.UpdateProfile)
		userRoutes.GET("/balance", userHandler.GetBalance)
		userRoutes.PUT("/balance", userHandler.AdjustBalance)
	}

	transactionRoutes := api.Group("/transactions", requireAuth)
	{
		transactionRoutes.POST("", transactionHandler.Create)
		transactionRoutes.GET("", transactionHandler.List)
		transactionRoutes.GET("/stats", transactionHandler.Stats)
		transactionRoutes.GET("/:transactionId", transactionHandler.Get)
		transactionRoutes.PUT("/:transactionId", transactionHandler.Update)
		transactionRoutes.DELETE("/:transactionId", transactionHandler.Delete)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
