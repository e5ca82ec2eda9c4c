package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/internal/config"
	"github.com/jefta/portfolio-api/internal/handler"
	"github.com/jefta/portfolio-api/internal/repository"
	"github.com/jefta/portfolio-api/internal/usecase"
	"github.com/jefta/portfolio-api/shared/auth"
	"github.com/jefta/portfolio-api/shared/mailer"
	"github.com/jefta/portfolio-api/shared/mongodb"
	"github.com/jefta/portfolio-api/shared/storage"
	sharedvalidator "github.com/jefta/portfolio-api/shared/validator"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	validate, trans, err := sharedvalidator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	// The document store connects lazily: the first request that needs it
	// pays the dial, every later request reuses the cached handle.
	manager := mongodb.NewManager(mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
	}, &logger)

	media, err := storage.NewS3MediaStore(context.Background(), storage.Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		Folder:          cfg.Storage.Folder,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize media storage")
	}

	smtp := mailer.NewMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	tokens := auth.NewTokenService(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.ExpiresIn)

	userRepo := repository.NewUserMongoRepository(manager)
	projectRepo := repository.NewProjectMongoRepository(manager)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens)
	projectUsecase := usecase.NewProjectUsecase(projectRepo, media, &logger)
	contactUsecase := usecase.NewContactUsecase(smtp, cfg.ContactRecipient(), &logger)

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authUsecase, validate, trans, &logger, cfg.IsProduction()),
		ProjectHandler: handler.NewProjectHandler(projectUsecase, validate, trans, &logger, cfg.IsProduction()),
		ContactHandler: handler.NewContactHandler(contactUsecase, validate, trans, &logger),
		Tokens:         tokens,
		AllowedOrigins: cfg.Origins,
		Logger:         &logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	if err := manager.Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("document store disconnect failed")
	}

	logger.Info().Msg("server stopped")
}
