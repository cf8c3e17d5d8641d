package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gallery-backend/internal/config"
	"github.com/ignatzorin/gallery-backend/internal/http/handlers"
	"github.com/ignatzorin/gallery-backend/internal/http/middleware"
	"github.com/ignatzorin/gallery-backend/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	itemHandler *handlers.ItemHandler,
	authHandler *handlers.AuthHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
	authService *service.AuthService,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Публичные маршруты: галерея видна без авторизации.
	api.GET("/items", itemHandler.ListItems)
	api.GET("/items/:id", middleware.UUIDValidator("id"), itemHandler.GetItem)
	api.GET("/ws", wsHandler.Handle)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/magic-link", authHandler.RequestMagicLink)
		authGroup.POST("/magic-link/verify", authHandler.VerifyMagicLink)
	}

	api.GET("/auth/session", authHandler.Session)

	// Защищённые маршруты: изменение галереи доступно только администратору.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager, authService))
	{
		protected.POST("/items", itemHandler.CreateItem)
		protected.PUT("/items/:id", middleware.UUIDValidator("id"), itemHandler.UpdateItem)
		protected.DELETE("/items/:id", middleware.UUIDValidator("id"), itemHandler.DeleteItem)
		protected.POST("/auth/logout", authHandler.Logout)
	}

	return r
}
