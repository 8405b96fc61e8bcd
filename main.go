package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/mr-prasai2004/realestate/config"
	"github.com/mr-prasai2004/realestate/internal/auth"
	"github.com/mr-prasai2004/realestate/internal/consumer"
	"github.com/mr-prasai2004/realestate/internal/handler"
	"github.com/mr-prasai2004/realestate/internal/middleware"
	"github.com/mr-prasai2004/realestate/internal/repository"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/mr-prasai2004/realestate/pkg/cache"
	"github.com/mr-prasai2004/realestate/pkg/database"
	"github.com/mr-prasai2004/realestate/pkg/logger"
	"github.com/mr-prasai2004/realestate/pkg/mailer"
	"github.com/mr-prasai2004/realestate/pkg/rabbitmq"
	"github.com/mr-prasai2004/realestate/pkg/storage"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.IsProduction(), cfg.LogFile)
	defer log.Sync()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	eventRepo := repository.NewBookingEventRepository(db)

	// Optional integrations
	var propertyCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		propertyCache = cache.NewRedisCache(rdb, "realestate:")
	}

	store := newStore(cfg, log)
	mail := newMailer(cfg, log)

	// RabbitMQ: publish booking lifecycle events and record them as audit rows.
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewBookingEventConsumer(eventRepo).Start(msgs)
	} else {
		log.Warn("RABBITMQ_URL not set, booking events will not be published")
	}

	// Services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, cfg.ResetSecret, cfg.ResetTokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, mail, cfg.ResetURL)
	propertySvc := service.NewPropertyService(propertyRepo, store, propertyCache, cfg.CacheTTL)
	userSvc := service.NewUserService(userRepo, propertySvc)
	bookingSvc := service.NewBookingService(bookingRepo, propertyRepo, eventRepo, publisher)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(cfg.IsProduction())
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigin,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoMw.BodyLimit("110M"))

	if cfg.StorageDriver != config.StorageS3 {
		e.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "realestate-api"})
	})

	authn := middleware.Authenticate(authSvc)
	handler.NewAuthHandler(authSvc, userSvc).RegisterRoutes(e, authn, middleware.AuthRateLimit(cfg.AuthRateLimit))
	handler.NewUserHandler(userSvc).RegisterRoutes(e, authn)
	handler.NewPropertyHandler(propertySvc).RegisterRoutes(e, authn)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, authn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("API starting", zap.String("port", cfg.ServerPort), zap.String("mode", cfg.Mode))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newStore(cfg *config.Config, log *zap.Logger) storage.Store {
	if cfg.StorageDriver == config.StorageS3 {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Options{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
			Bucket:          cfg.AWSBucket,
			BaseURL:         cfg.AWSBaseURL,
		})
		if err != nil {
			log.Fatal("failed to configure S3 storage", zap.Error(err))
		}
		return s3Store
	}

	local, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatal("failed to prepare upload directory", zap.Error(err))
	}
	return local
}

func newMailer(cfg *config.Config, log *zap.Logger) mailer.Mailer {
	if cfg.SMTPHost == "" {
		log.Warn("SMTP_HOST not set, outgoing mail is logged instead of sent")
		return mailer.NewLogMailer(log)
	}
	return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}
