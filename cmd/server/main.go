package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-coach/internal/api"
	"alcyxob/fitness-coach/internal/config"
	"alcyxob/fitness-coach/internal/logging"
	"alcyxob/fitness-coach/internal/repository/mongo"
	"alcyxob/fitness-coach/internal/scheduler"
	"alcyxob/fitness-coach/internal/service"
	"alcyxob/fitness-coach/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Fitness Coach API
// @version 1.0
// @description Training plan generation and adaptation for endurance, strength and hybrid athletes.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	logger.Info("starting fitness coach server")

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server exiting")
}

func run(cfg config.Config, logger *slog.Logger) error {
	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("disconnecting mongodb")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect mongodb", slog.Any("error", err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			logger.Error("index creation failed", slog.Any("error", err))
			return
		}
		logger.Info("database indexes ensured")
	}()

	// --- Storage ---
	// Export is disabled rather than fatal when no bucket is configured.
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("no s3 bucket configured, plan export disabled")
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	planRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	adaptationRepo := mongo.NewMongoAdaptationRepository(appDB)

	// --- Services ---
	// Plan and adaptation writes for one user share a lock.
	locks := service.NewUserLocks()
	adaptationService := service.NewAdaptationService(planRepo, adaptationRepo, locks, service.AdaptationServiceConfig{
		Cooldown: cfg.Planning.AdaptationCooldown,
		Logger:   logger,
	})
	services := api.Services{
		Auth:    service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, logger),
		Profile: service.NewProfileService(profileRepo, adaptationService, nil, logger),
		Plan: service.NewPlanService(profileRepo, exerciseRepo, planRepo, fileStorage, locks, service.PlanServiceConfig{
			RandomSeed: cfg.Planning.RandomSeed,
			URLExpiry:  cfg.Export.URLExpiry,
			Logger:     logger,
		}),
		Adaptation: adaptationService,
		Exercise:   service.NewExerciseService(exerciseRepo),
	}

	// --- Background jobs ---
	if cfg.Scheduler.Enabled {
		job := scheduler.NewProgressJob(planRepo, nil, logger)
		sched, err := scheduler.Start(cfg.Scheduler.ProgressSpec, job, logger)
		if err != nil {
			return err
		}
		defer sched.Stop()
	}

	// --- HTTP ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(logger))
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
