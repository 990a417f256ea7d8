package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuna/nekotalk/internal/api"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/catmind"
	"github.com/yuna/nekotalk/internal/config"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
	"github.com/yuna/nekotalk/internal/service"
	"github.com/yuna/nekotalk/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(logger.LoadFromEnv())
	defer logger.Sync()
	logger.SetDefaultLogger(appLogger)

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	catRepo := repository.NewCatRepository(db)
	postRepo := repository.NewPostRepository(db)
	consultRepo := repository.NewConsultationRepository(db)

	// Initialize object storage
	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize object storage")
	}

	// Initialize model client and pipelines
	modelClient := catmind.NewClient(&catmind.ClientConfig{
		Model:     cfg.Model.Model,
		APIKey:    cfg.Model.APIKey,
		BaseURL:   cfg.Model.BaseURL,
		MaxTokens: cfg.Model.MaxTokens,
		Timeout:   cfg.Model.Timeout,
	})
	translator := catmind.NewTranslator(modelClient, appLogger)
	consultant := catmind.NewConsultant(modelClient, appLogger)

	// Initialize services
	services := api.Services{
		User:      service.NewUserService(userRepo, sessionRepo, catRepo, postRepo, appLogger, cfg.Session.TTL),
		Cat:       service.NewCatService(catRepo, userRepo, appLogger),
		Post:      service.NewPostService(postRepo, catRepo, userRepo, appLogger),
		Translate: service.NewTranslateService(catRepo, translator, appLogger),
		Consult:   service.NewConsultService(consultRepo, catRepo, consultant, appLogger, cfg.Consult.VideoDailyLimit),
		Media:     service.NewMediaService(objectStorage, appLogger),
	}

	router := api.SetupRouter(services, appLogger, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
	appLogger.Info("Server stopped")
}
