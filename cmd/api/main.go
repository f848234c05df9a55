package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-tracker-backend/config"
	_ "job-tracker-backend/docs" // Important for Swagger
	v1 "job-tracker-backend/internal/delivery/http/v1"
	"job-tracker-backend/internal/store"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/logger"
	"job-tracker-backend/pkg/redis"
	"job-tracker-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Job Tracker API
// @version         1.0
// @description     Per-user job application tracker: filtered listing, pagination and statistics.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting job tracker backend", "port", cfg.Port, "store", cfg.StoreDriver)

	// 3. Setup Store
	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	jobRepo, closeStore, err := store.Open(startCtx, cfg)
	cancelStart()
	if err != nil {
		logger.Log.Error("Failed to open job store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	var cachePing usecase.Pinger
	if err := redis.Initialize(context.Background(), redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	} else {
		cachePing = redis.HealthCheck
		defer redis.Close()
	}

	// 5. Setup UseCases
	jobUC := usecase.NewJobUsecase(jobRepo, validation.New())
	healthUC := usecase.NewHealthUsecase(jobRepo, cachePing)

	// 6. Setup Token Verifier
	var jwksProvider *auth.Provider
	if cfg.JWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSURL)
	}
	verifier := auth.NewVerifier(cfg.JWTSecret, jwksProvider)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:    jobUC,
		HealthUC: healthUC,
		Verifier: verifier,
		Redis:    redis.Client(),
		Config:   cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
