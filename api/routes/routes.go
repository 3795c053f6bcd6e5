package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/up2ustore/bundles-backend/internal/config"
	"github.com/up2ustore/bundles-backend/internal/handlers"
	"github.com/up2ustore/bundles-backend/internal/metrics"
	"github.com/up2ustore/bundles-backend/internal/middleware"
)

// HandlerDependencies carries the handlers the router wires up
type HandlerDependencies struct {
	TransactionHandler  *handlers.TransactionHandler
	VerificationHandler *handlers.VerificationHandler
	BundleHandler       *handlers.BundleHandler
	AuthHandler         *handlers.AuthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"message":   "Backend is running",
				"timestamp": time.Now(),
			})
		})

		public.GET("/bundles", deps.BundleHandler.GetBundles)

		public.POST("/transactions", deps.TransactionHandler.CreateTransaction)
		public.GET("/transactions", deps.TransactionHandler.GetTransactions)
		public.GET("/transactions/:id", deps.TransactionHandler.GetTransactionByID)
		public.GET("/transactions/phone/:phone", deps.TransactionHandler.GetTransactionsByPhone)

		public.GET("/verify-payment/:reference", deps.VerificationHandler.VerifyPayment)
		public.POST("/webhooks/paystack", deps.VerificationHandler.Webhook)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	{
		admin.POST("/login", deps.AuthHandler.Login)

		protected := admin.Group("")
		protected.Use(middleware.JWTAuthMiddleware(cfg))
		{
			protected.POST("/register", deps.AuthHandler.Register)
			protected.GET("/summary", deps.TransactionHandler.GetSummary)
		}
	}

	return router
}
