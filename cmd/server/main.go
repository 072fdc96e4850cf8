package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SainteOfficial/autohaus-service/internal/adapter/httpapi"
	natspub "github.com/SainteOfficial/autohaus-service/internal/adapter/messaging/nats"
	"github.com/SainteOfficial/autohaus-service/internal/adapter/repository/cache"
	"github.com/SainteOfficial/autohaus-service/internal/adapter/repository/mongodb"
	"github.com/SainteOfficial/autohaus-service/internal/adapter/storage/s3"
	"github.com/SainteOfficial/autohaus-service/internal/auth"
	"github.com/SainteOfficial/autohaus-service/internal/config"
	"github.com/SainteOfficial/autohaus-service/internal/favorites"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/usecase"
	"github.com/SainteOfficial/autohaus-service/internal/mailer"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
	"github.com/SainteOfficial/autohaus-service/internal/watermark"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("service stopped", "error", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDB)
	log.Info("connected to mongo", "database", cfg.MongoDB)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	defer redisClient.Close()
	if err := redisClient.Ping(connectCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	log.Info("connected to redis", "address", cfg.RedisAddress)

	objectStorage, err := s3.New(connectCtx, cfg.MinIOEndpoint, cfg.MinIOAccessKey,
		cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
	if err != nil {
		return fmt.Errorf("object storage: %w", err)
	}
	log.Info("connected to object storage", "bucket", cfg.MinIOBucket)

	publisher, err := natspub.NewPublisher(cfg.NATSURL, log)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer publisher.Close()

	vehicleRepo := mongodb.NewVehicleRepository(db)
	galleryRepo := mongodb.NewGalleryRepository(db)
	inquiryRepo := mongodb.NewInquiryRepository(db)
	adminRepo := mongodb.NewAdminUserRepository(db)

	vehicleCache := cache.NewVehicleCache(redisClient)
	favoritesStore := favorites.NewStore(cache.NewFavoritesKV(redisClient))
	blacklist := cache.NewTokenBlacklist(redisClient)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser,
		cfg.SMTPPassword, cfg.SMTPFrom, cfg.InquiryInbox, log)

	compositor := watermark.New(cfg.WatermarkLogoPath, cfg.WatermarkLogoFallback)

	uploadUC := usecase.NewUploadUsecase(objectStorage, compositor,
		cfg.MaxUploadCount, cfg.MaxUploadBytes, log)
	vehicleUC := usecase.NewVehicleUsecase(vehicleRepo, vehicleCache, publisher, uploadUC, log)
	galleryUC := usecase.NewGalleryUsecase(galleryRepo, vehicleRepo, objectStorage, uploadUC, log)
	inquiryUC := usecase.NewInquiryUsecase(inquiryRepo, vehicleRepo, smtpMailer, publisher, log)

	authService := auth.NewService(adminRepo, blacklist, cfg.JWTSecret, cfg.SessionTTL, log)
	if err := authService.EnsureAdmin(connectCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	server := httpapi.NewServer(vehicleUC, galleryUC, inquiryUC, uploadUC,
		favoritesStore, authService, cfg.MaxUploadBytes, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      server.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
