package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-api/internal/api"
	"alcyxob/fitness-api/internal/config"
	"alcyxob/fitness-api/internal/logger"
	mongorepo "alcyxob/fitness-api/internal/repository/mongo"
	"alcyxob/fitness-api/internal/service"
)

func main() {
	// Bring up a default logger first so config failures are visible.
	if err := logger.Initialize("info"); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Log.Sync() }()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalw("failed to load configuration", "error", err)
	}
	if err := logger.Initialize(cfg.Log.Level); err != nil {
		logger.Log.Fatalw("failed to initialize logger", "error", err)
	}

	if cfg.JWT.Secret == "" {
		logger.Log.Fatal("JWT secret is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Log.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer mongorepo.DisconnectDB(mongoClient)

	db := mongoClient.Database(cfg.Database.Name)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		logger.Log.Fatalw("failed to ensure indexes", "error", err)
	}

	userRepo := mongorepo.NewMongoUserRepository(db)
	exerciseRepo := mongorepo.NewMongoExerciseRepository(db)
	templateRepo := mongorepo.NewMongoWorkoutTemplateRepository(db)
	executionRepo := mongorepo.NewMongoWorkoutExecutionRepository(db)

	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	templateService := service.NewWorkoutTemplateService(templateRepo, exerciseRepo, userRepo)
	executionService := service.NewWorkoutExecutionService(executionRepo, templateRepo, exerciseRepo)

	router := api.SetupRouter(cfg.JWT.Secret, userService, exerciseService, templateService, executionService)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		logger.Log.Infow("starting server", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("server forced to shutdown", "error", err)
	}
	logger.Log.Info("server exited")
}
