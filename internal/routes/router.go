package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/delivery/http/handler"
	"storefront/internal/infrastructure/database/postgres"
	"storefront/internal/logger"
	"storefront/internal/mailer"
	"storefront/internal/middleware"
	orderUsecase "storefront/internal/usecase/order"
	productUsecase "storefront/internal/usecase/product"
	userUsecase "storefront/internal/usecase/user"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	productRepository := postgres.NewProductRepository(db)
	orderRepository := postgres.NewOrderRepository(db)

	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	} else {
		mail = mailer.LogMailer{}
	}

	userService := userUsecase.NewService(userRepository, mail, cfg)
	userHandler := handler.NewUserHandler(userService, cfg)

	productService := productUsecase.NewService(productRepository, cfg.App.ResPerPage)
	productHandler := handler.NewProductHandler(productService)

	orderService := orderUsecase.NewService(orderRepository, productRepository)
	orderHandler := handler.NewOrderHandler(orderService)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		productHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, userRepository))
		{
			userHandler.RegisterProfileRoutes(protected)
			productHandler.RegisterReviewRoutes(protected)
			orderHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				productHandler.RegisterAdminRoutes(admin)
				orderHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
