package main

import (
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Fitness Tracker API
// @version 1.0
// @description API for managing user accounts, workouts, and weekly schedules.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	log := logger.Get(cfg.Log.Level)
	defer log.Sync()
	log.Infow("starting fitness tracker server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalw("could not connect to MongoDB", "uri", cfg.Database.URI, "err", err)
	}
	defer func() {
		log.Infow("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorw("failed to disconnect MongoDB", "err", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Infow("database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		log.Infow("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalw("failed to initialize S3 storage", "err", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	ownership := service.NewOwnershipService(workoutRepo, userRepo)
	workoutService := service.NewWorkoutService(workoutRepo, ownership)
	userService := service.NewUserService(userRepo, workoutRepo, ownership, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, authService, userService, workoutService, ownership, log)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("listen and serve error", "err", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutting down server")

	// In-flight requests get five seconds to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}

	log.Infow("server exiting")
}
