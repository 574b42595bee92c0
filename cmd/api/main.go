package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/jobs"
	"fintrack/internal/logger"
	"fintrack/internal/market"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           FinTrack API
// @version         1.0
// @description     FinTrack is a personal finance application for tracking income, expenses, and stock market investments.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validations
	validator.Register()

	// Create database manager and run migrations
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	db := dbManager.DB()

	// Price pipeline: Yahoo quotes behind a Redis cache
	redisClient, err := cache.NewRedisClient(appConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	resolver := market.NewResolver(
		cache.NewRedisStore(redisClient),
		market.NewYahooClient(appConfig),
		appConfig.PriceCacheTTL,
	)

	// Initialize services
	investmentService := services.NewInvestmentService(db, resolver)
	transactionService := services.NewTransactionService(db)
	dashboardService := services.NewDashboardService(db, resolver)

	// Initialize handlers
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Background price cache warming
	refresher := jobs.NewPriceRefresher(db, resolver)
	scheduler, err := refresher.Schedule(appConfig.RefreshInterval)
	if err != nil {
		return fmt.Errorf("failed to start price refresher: %w", err)
	}
	defer func() { _ = scheduler.Shutdown() }()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, all routes require a valid token
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	// Investment routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.AddInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/price/:ticker", investmentHandler.GetPrice)
	investments.GET("/:id/details", investmentHandler.GetInvestmentDetails)
	investments.POST("/:id/transactions", investmentHandler.AddLot)
	investments.PUT("/:id/transactions/:transactionId", investmentHandler.UpdateLot)
	investments.DELETE("/:id/transactions/:transactionId", investmentHandler.DeleteLot)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Dashboard routes
	dashboard := v1.Group("/dashboard")
	dashboard.GET("/monthly", dashboardHandler.GetMonthlyDashboard)
	dashboard.GET("/yearly", dashboardHandler.GetYearlyDashboard)
	dashboard.GET("/investments", dashboardHandler.GetInvestmentsSummary)

	log.Infof("Starting FinTrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
