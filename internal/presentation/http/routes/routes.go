package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/config"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
	"github.com/anviet/tuition-api/internal/presentation/http/handler"
	"github.com/anviet/tuition-api/internal/presentation/http/middleware"
	"github.com/anviet/tuition-api/internal/presentation/http/view"
	"github.com/anviet/tuition-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Tuition *handler.TuitionHandler
	Draft   *handler.DraftHandler
	Receipt *handler.ReceiptHandler
	Export  *handler.ExportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	RateLimiter *middleware.ClientRateLimiter
	Logger      *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.SetHTMLTemplate(view.Templates())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)

	// Dashboard and form
	protected.GET("/types", h.Tuition.ListTypes)
	protected.GET("/forms/:type", h.Tuition.NewForm)

	// Drafts
	drafts := protected.Group("/drafts")
	{
		drafts.GET("/:type", h.Draft.Get)
		drafts.PUT("/:type", h.Draft.Save)
		drafts.DELETE("/:type", h.Draft.Clear)
	}

	// Receipts
	receipts := protected.Group("/receipts")
	{
		receipts.POST("/preview", h.Tuition.Preview)
		receipts.POST("", h.Tuition.Submit)
	}

	// History
	history := protected.Group("/history")
	{
		history.GET("", h.Tuition.ListHistory)
		history.GET("/export", h.Export.ExportHistory)
		history.GET("/:id", h.Tuition.GetRecord)
		history.DELETE("/:id", h.Tuition.DeleteRecord)
		history.GET("/:id/receipt", h.Receipt.GetReceipt)
		history.GET("/:id/receipt/view", h.Receipt.RenderReceipt)
		history.POST("/:id/print", h.Receipt.PrintReceipt)
	}

	// Printer
	protected.GET("/printer/status", h.Receipt.GetStatus)

	// Backups
	protected.POST("/backups", h.Export.Backup)
}
