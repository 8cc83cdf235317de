package main

import (
	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/api"
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/logging"
	"alcyxob/fitness-planner/internal/repository/mongo"
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
)

// @title Fitness Planner API
// @version 1.0
// @description Generates personalized workout and diet plans.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	log.Info("Starting Fitness Planner server...")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to MongoDB")
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("Database connection established")

	// --- Ensure Indexes ---
	go func() { // Run index creation in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.WithError(err).Warn("Index creation failed")
			return
		}
		log.Info("Index creation process completed")
	}()

	// --- AI Provider ---
	gemini, err := ai.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Gemini client")
	}
	defer gemini.Close()

	// --- Initialize Storage ---
	var images *storage.ImageResolver
	if cfg.S3.Enabled() {
		fileStorage, err := storage.NewS3Storage(context.Background(), cfg.S3, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize S3 storage")
		}
		images = storage.NewImageResolver(fileStorage, cfg.S3.URLExpiry, log)
	} else {
		log.Info("S3 not configured, profile images are served as stored")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, service.AuthOptions{
		JWTSecret:      cfg.JWT.Secret,
		JWTExpiration:  cfg.JWT.Expiration,
		VerifyPassword: cfg.Auth.VerifyPassword,
	}, log)
	planService := service.NewPlanService(planRepo)
	fitnessService := service.NewFitnessService(userRepo, planRepo, gemini, service.GenerationOptions{
		Timeout:     cfg.Generation.Timeout,
		Temperature: cfg.AI.Temperature,
		TopP:        cfg.AI.TopP,
		Retry:       ai.RetryPolicy{MaxRetries: cfg.AI.MaxRetries, BaseDelay: cfg.AI.BaseDelay},
	}, log)

	// --- Initialize Gin Engine ---
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	generateLimiter := api.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
	generateLimiter.StartCleanup(limiterCtx, time.Minute)

	if err := api.SetupRoutes(router, api.RouterConfig{
		JWTSecret:       cfg.JWT.Secret,
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		TrustedProxies:  cfg.Server.TrustedProxies,
		GenerateLimiter: generateLimiter,
	}, authService, planService, fitnessService, images, log); err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// In-flight generations get the full generation timeout to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Generation.Timeout+5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exiting")
}
