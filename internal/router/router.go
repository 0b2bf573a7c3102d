package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"assurdoc/internal/config"
	"assurdoc/internal/domain"
	"assurdoc/internal/handler"
	"assurdoc/internal/metrics"
	"assurdoc/internal/middleware"
	"assurdoc/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	analysisH *handler.AnalysisHandler,
	insurerH *handler.InsurerHandler,
	userH *handler.UserHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", metrics.Handler())

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Analysis routes
	analyses := protected.Group("/analyses")
	analyses.POST("", analysisH.Submit)
	analyses.GET("/recent", statsH.RecentAnalyses)
	analyses.GET("/export.csv", middleware.RequireRole(domain.RoleAdmin, domain.RoleAgent), statsH.ExportCSV)
	analyses.GET("/tasks/:taskID", analysisH.TaskStatus)
	analyses.GET("/:demandeID", analysisH.Get)
	analyses.GET("/:demandeID/view", analysisH.View)
	analyses.GET("/:demandeID/notifications", analysisH.Notifications)

	// Insurer reference data and reporting
	insurers := protected.Group("/insurers")
	insurers.POST("", middleware.RequireRole(domain.RoleAdmin), insurerH.Create)
	insurers.GET("", insurerH.List)
	insurers.GET("/:id", insurerH.Get)
	insurers.GET("/:id/analyses", insurerH.ListAnalyses)
	insurers.GET("/:id/stats", insurerH.Stats)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)

	return r
}
