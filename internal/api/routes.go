package api

import (
	"alcyxob/fitness-planner/internal/metrics"
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries the HTTP-level settings of SetupRoutes.
type RouterConfig struct {
	JWTSecret     string
	AllowedOrigin string // Browser origin allowed to call the API with credentials
	// TrustedProxies may set X-Forwarded-For / X-Real-IP. Empty trusts none,
	// so the client IP is the socket peer.
	TrustedProxies []string
	// GenerateLimiter guards generate-program; nil disables the limit.
	GenerateLimiter *RateLimiter
}

func SetupRoutes(
	router *gin.Engine,
	cfg RouterConfig,
	authService service.AuthService,
	planService service.PlanService,
	fitnessService service.FitnessService,
	images *storage.ImageResolver, // nil when S3 is not configured
	log logrus.FieldLogger,
) error {
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(RequestID(), Logger(log), metrics.GinMiddleware())
	if cfg.AllowedOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.AllowedOrigin},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	authHandler := NewAuthHandler(authService, images, log)
	planHandler := NewPlanHandler(planService, images, log)
	fitnessHandler := NewFitnessHandler(fitnessService, log)

	authMiddleware := AuthMiddleware(cfg.JWTSecret)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Fitness API Server is running!"})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
			authGroup.POST("/plans", authMiddleware, planHandler.ListPlans)
		}

		fitnessGroup := apiGroup.Group("/fitness")
		{
			fitnessGroup.POST("/generate-program", cfg.GenerateLimiter.Handler(), fitnessHandler.GenerateProgram)
		}
	}
	return nil
}
