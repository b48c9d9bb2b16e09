package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scaleworks/ddt-api/internal/config"
	"github.com/scaleworks/ddt-api/internal/presentation/http/handler"
	"github.com/scaleworks/ddt-api/internal/presentation/http/middleware"
	"github.com/scaleworks/ddt-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Ticket   *handler.TicketHandler
	Document *handler.DocumentHandler
	Client   *handler.ClientHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)

	registerTicketRoutes(protected, h)
	registerDocumentRoutes(protected, h)
	registerClientRoutes(protected, h)
}

func registerTicketRoutes(protected *gin.RouterGroup, h *Handlers) {
	tickets := protected.Group("/tickets")
	{
		tickets.GET("", h.Ticket.List)
		tickets.GET("/:id", h.Ticket.Get)
	}
}

func registerDocumentRoutes(protected *gin.RouterGroup, h *Handlers) {
	documents := protected.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.POST("", h.Document.Create)
		documents.POST("/preview", h.Document.Preview)
		documents.GET("/:id", h.Document.Get)
		documents.GET("/:id/export", h.Document.Export)
		documents.DELETE("/:id", h.Document.Delete)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.GET("/:id", h.Client.Get)
	}
}
