package app

import (
	"tangle_play_backend/docs"
	"tangle_play_backend/internal/config"
	"tangle_play_backend/internal/middleware"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// player routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/levels/:category", c.level.ListLevels)
		authGroup.GET("/levels/:category/:levelNumber", c.level.GetLevel)
		authGroup.GET("/levels/:category/:levelNumber/phase", c.play.EvaluatePhase)
		authGroup.POST("/levels/:category/:levelNumber/attempts", c.play.RecordAttempt)

		authGroup.GET("/progress", c.progress.GetProgress)
		authGroup.GET("/progress/stats", c.progress.GetStats)
		authGroup.GET("/progress/weekly/:weekKey", c.progress.GetWeeklyAttempts)
		authGroup.GET("/leaderboard", c.progress.GetLeaderboard)
	}

	// admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.admin.GetDashboard)

		admin.GET("/levels", c.level.ListAllLevels)
		admin.POST("/levels/:category/upload", c.level.UploadLevels)
		admin.PATCH("/levels/:category/:levelNumber", c.level.UpdateLevel)
		admin.DELETE("/levels/:category/:levelNumber", c.level.DeleteLevel)

		admin.GET("/users", c.admin.ListUsers)
		admin.GET("/users/:userId", c.admin.GetUserDetail)
		admin.DELETE("/users/:userId", c.admin.DeleteUser)
		admin.GET("/users/:userId/weekly/:weekKey", c.admin.GetUserWeeklyAttempts)
	}
}
