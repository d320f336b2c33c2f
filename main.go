package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/common/logger"
	"learnhub-backend/common/middleware"
	"learnhub-backend/controllers"
	"learnhub-backend/database"
	"learnhub-backend/repository"
	"learnhub-backend/routes"
	"learnhub-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// --- 1. Initialization ---
	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	redisClient := redis.NewClient(redisOpts)

	// --- 2. Dependency injection (wiring the layers together) ---
	lessonRepo := repository.NewLessonRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		zap.L().Warn("Failed to ensure user indexes", zap.Error(err))
	}
	indexCancel()

	tokenService := services.NewTokenService(cfg.JWTSecret)
	lessonService := services.NewLessonService(lessonRepo)
	orderService := services.NewOrderService(orderRepo, lessonRepo)
	authService := services.NewAuthService(userRepo, tokenService)

	cacheManager := controllers.NewCacheManager(redisClient)
	lessonController := controllers.NewLessonController(lessonService, cacheManager)
	orderController := controllers.NewOrderController(orderService, cacheManager)
	authController := controllers.NewAuthController(authService)
	imageController := controllers.NewImageController(cfg.ImagesDir)

	// --- 3. HTTP server ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	routes.RegisterLessonRoutes(r, lessonController)
	routes.RegisterOrderRoutes(r, orderController, tokenService)
	routes.RegisterAuthRoutes(r, authController)
	routes.RegisterImageRoutes(r, imageController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Error starting server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Forced shutdown", zap.Error(err))
	}
}
