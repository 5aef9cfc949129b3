package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"meal-server/internal/config"
	"meal-server/internal/generator"
	"meal-server/internal/handler"
	"meal-server/internal/logger"
	"meal-server/internal/notifier"
	"meal-server/internal/repository"
	"meal-server/internal/service"
	"meal-server/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	ctx := context.Background()

	// Redis: draft store + list-query cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer redisClient.Close()
	zapLogger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Firestore: permanent meal store.
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Firebase app", zap.Error(err))
	}
	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to create Firestore client", zap.Error(err))
	}
	defer firestoreClient.Close()
	zapLogger.Info("Connected to Firestore", zap.String("projectID", cfg.FirebaseProjectID))

	// Dependencies, explicitly constructed and injected.
	draftRepo := repository.NewRedisDraftRepository(redisClient, cfg.DraftTTL, zapLogger)
	mealStore := repository.NewFirestoreMealRepository(firestoreClient, zapLogger)
	listCache := repository.NewRedisMealListCache(redisClient, cfg.MealListCacheTTL, zapLogger)

	gen := generator.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout, zapLogger)
	hub := notifier.New(cfg.MaxSubscriptionsPerUser, zapLogger)
	bgWorker := worker.New(draftRepo, gen, hub, zapLogger)

	draftService := service.NewDraftService(draftRepo, bgWorker, hub, zapLogger)
	mealService := service.NewMealService(draftRepo, mealStore, listCache, hub, zapLogger)
	apiHandler := handler.NewHandler(draftService, mealService, hub, cfg.JWTSecret, zapLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	apiHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info("Starting meal server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down meal server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}
	zapLogger.Info("Meal server stopped")
}
