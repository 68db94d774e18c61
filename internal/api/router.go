package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/solarwatch/backend/internal/api/controllers"
	"github.com/solarwatch/backend/internal/api/middleware"
	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/db"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router manages the API routes and controllers
type Router struct {
	engine          *gin.Engine
	logger          *utils.Logger
	config          *config.Config
	authMiddleware  *middleware.AuthMiddleware
	serviceProvider *services.ServiceProvider
	db              *db.Database
}

// NewRouter creates a new Router instance
func NewRouter(
	cfg *config.Config,
	logger *utils.Logger,
	database *db.Database,
	serviceProvider *services.ServiceProvider,
) *Router {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggingMiddleware(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type", "Origin"}
	engine.Use(cors.New(corsConfig))

	authMiddleware := middleware.NewAuthMiddleware(&cfg.JWT)

	return &Router{
		engine:          engine,
		logger:          logger.Named("router"),
		config:          cfg,
		authMiddleware:  authMiddleware,
		serviceProvider: serviceProvider,
		db:              database,
	}
}

// SetupRoutes configures all API routes
func (r *Router) SetupRoutes() {
	// Health check endpoint (no auth required)
	r.engine.GET("/health", func(c *gin.Context) {
		if err := r.db.VerifyConnection(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authController := controllers.NewAuthController(r.serviceProvider.User(), r.serviceProvider.PasswordStrength(), r.logger)
	sensorController := controllers.NewSensorController(r.serviceProvider.SensorData(), r.logger)
	predictionController := controllers.NewPredictionController(r.serviceProvider.Prediction(), r.serviceProvider.Severity(), r.logger)
	alertController := controllers.NewAlertController(r.serviceProvider.Alert(), r.logger)
	analyticsController := controllers.NewAnalyticsController(r.serviceProvider.Analytics(), r.logger)
	dashboardController := controllers.NewDashboardController(r.serviceProvider.Dashboard(), r.logger)
	plantController := controllers.NewPlantController(r.serviceProvider.Plant(), r.logger)
	panelController := controllers.NewPanelController(r.serviceProvider.Panel(), r.logger)

	// Auth routes (no auth required)
	authController.RegisterRoutes(r.engine.Group("/api"))

	// All main API routes are under /api/v1 and require authentication
	authorized := r.engine.Group("/api/v1")
	authorized.Use(r.authMiddleware.RequireAuth())

	authController.RegisterProtectedRoutes(authorized)
	sensorController.RegisterRoutes(authorized)
	predictionController.RegisterRoutes(authorized)
	alertController.RegisterRoutes(authorized)
	analyticsController.RegisterRoutes(authorized)
	dashboardController.RegisterRoutes(authorized)

	// Fleet management writes and user administration are restricted to admins
	admin := authorized.Group("")
	admin.Use(r.authMiddleware.RequireAdmin())

	plantController.RegisterRoutes(authorized, admin)
	panelController.RegisterRoutes(authorized, admin)

	userController := controllers.NewUserController(r.serviceProvider.User(), r.logger)
	userController.RegisterRoutes(admin)

	// Swagger documentation outside production
	if !r.config.Server.IsProduction() {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.logger.Info("API routes setup completed")
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
