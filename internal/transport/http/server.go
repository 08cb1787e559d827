package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "portfolio-backend/internal/app"
	"portfolio-backend/internal/bootstrap"
	"portfolio-backend/internal/cache"
	rabbitmqClient "portfolio-backend/internal/platform/rabbitmq"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/transport/http/handler"
	"portfolio-backend/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	projectRepo := repository.NewProjectRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		app.Config.Auth.JWTAlgorithm,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	// Cache and view pipeline are optional: without Redis or RabbitMQ the
	// project routes serve straight from MySQL.
	var projectCache appsvc.ProjectCache
	if app.Redis != nil {
		projectCache = cache.NewProjectCache(
			app.Redis,
			time.Duration(app.Config.Redis.ProjectCacheTTLSeconds)*time.Second,
		)
	}
	var viewPublisher appsvc.ViewPublisher
	if app.MQConn != nil {
		viewPublisher = rabbitmqClient.NewViewPublisher(app.MQConn, app.Config.RabbitMQ.ViewPersistQueue)
	}
	projectService := appsvc.NewProjectService(projectRepo, projectCache, viewPublisher)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)

	authed := middleware.Authenticate(app.Config.Auth.JWTSecret, app.Config.Auth.JWTAlgorithm, authService)

	authGroup := router.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authed, authHandler.Me)

	projectGroup := router.Group("/projects")
	projectGroup.GET("", projectHandler.List)
	projectGroup.GET("/:id", projectHandler.Get)
	projectGroup.POST("", authed, projectHandler.Create)
	projectGroup.PUT("/:id", authed, projectHandler.Update)
	projectGroup.DELETE("/:id", authed, projectHandler.Delete)

	return router
}
