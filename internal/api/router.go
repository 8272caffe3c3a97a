package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/ratelimit"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, limiter ratelimit.Limiter, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	billingHandler := NewBillingHandler(services, log)
	settingsHandler := NewSettingsHandler(services, log)
	bookmarkHandler := NewBookmarkHandler(services, log)
	adHandler := NewAdHandler(services, log)
	adminHandler := NewAdminHandler(services, log)

	auth := AuthRequired(cfg.Auth.JWTSecret)
	optionalAuth := AuthOptional(cfg.Auth.JWTSecret)
	staff := RequireRole("admin", "editor")
	admin := RequireRole("admin")
	throttle := RateLimit(limiter)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	{
		// Auth
		v1.POST("/auth/signup", throttle, authHandler.Signup)
		v1.POST("/auth/login", throttle, authHandler.Login)
		v1.GET("/me", auth, authHandler.Me)
		v1.PUT("/me", auth, authHandler.UpdateMe)

		// Articles
		articles := v1.Group("/articles")
		{
			// Listing takes an optional token so staff can see drafts
			articles.GET("", optionalAuth, articleHandler.List)
			articles.GET("/:id", articleHandler.Get)
			articles.POST("", auth, staff, articleHandler.Create)
			articles.PUT("/:id", auth, staff, articleHandler.Update)
			articles.DELETE("/:id", auth, staff, articleHandler.Delete)

			// Comments on an article
			articles.GET("/:id/comments", commentHandler.Tree)
			articles.POST("/:id/comments", auth, throttle, commentHandler.Create)

			// AI content tools
			articles.POST("/:id/ai/summary", auth, staff, articleHandler.Summarize)
			articles.POST("/:id/ai/tags", auth, staff, articleHandler.SuggestTags)
		}

		// Comment moderation
		v1.DELETE("/comments/:id", auth, admin, commentHandler.Delete)

		// Bookmarks
		v1.GET("/bookmarks", auth, bookmarkHandler.List)
		v1.POST("/bookmarks", auth, bookmarkHandler.Create)
		v1.DELETE("/bookmarks/:id", auth, bookmarkHandler.Delete)

		// Settings
		v1.GET("/settings", auth, settingsHandler.Get)
		v1.PUT("/settings", auth, settingsHandler.Put)

		// Billing
		v1.POST("/billing/checkout", auth, billingHandler.CreateCheckout)
		v1.GET("/billing/payments", auth, billingHandler.ListPayments)
		v1.POST("/webhooks/billing", billingHandler.Webhook)

		// Ads
		v1.GET("/ads", adHandler.ListActive)
		v1.GET("/admin/ads", auth, admin, adHandler.ListAll)
		v1.POST("/admin/ads", auth, admin, adHandler.Create)
		v1.PUT("/admin/ads/:id", auth, admin, adHandler.Update)
		v1.DELETE("/admin/ads/:id", auth, admin, adHandler.Delete)

		// Admin dashboard
		v1.GET("/admin/stats", auth, admin, adminHandler.Stats)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "newswire-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
