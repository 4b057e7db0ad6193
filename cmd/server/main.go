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

	"github.com/redis/go-redis/v9"

	"serraturismo/config"
	_ "serraturismo/docs"
	"serraturismo/internal/adapters/auth"
	"serraturismo/internal/adapters/email"
	"serraturismo/internal/adapters/locations"
	"serraturismo/internal/adapters/storage"
	minioadapter "serraturismo/internal/adapters/storage/minio"
	appHTTP "serraturismo/internal/delivery/http"
	"serraturismo/internal/delivery/http/controllers"
	"serraturismo/internal/delivery/http/middleware"
	"serraturismo/internal/repository/mongodb"
	"serraturismo/internal/services"
	"serraturismo/internal/view"
)

const serviceTimeout = 5 * time.Second

// @title Serra Turismo API
// @version 1.0
// @description Backend for the regional tourism bureau: events, event requests, associates, locations, and mail.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("failed to connect to mongodb", "err", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongodb disconnect failed", "err", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	var cache *redis.Client
	var invalidator *middleware.CacheInvalidator
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, response cache disabled", "addr", cfg.RedisAddr, "err", err)
	} else {
		cache = rdb
		invalidator = middleware.NewCacheInvalidator(rdb, logger)
	}

	var assets storage.Service
	if cfg.Storage.Enabled() {
		client, err := minioadapter.New(ctx, minioadapter.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			logger.Error("failed to connect to object storage", "err", err)
			os.Exit(1)
		}
		assets = client
	} else {
		logger.Warn("no object storage configured, logo uploads disabled")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	eventRepo := mongodb.NewEventRepository(db)
	requestRepo := mongodb.NewEventRequestRepository(mongoClient, db)
	associateRepo := mongodb.NewAssociateRepository(db)
	adminRepo := mongodb.NewAdminUserRepository(db)

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	requestService := services.NewEventRequestService(requestRepo, serviceTimeout)
	associateService := services.NewAssociateService(associateRepo, assets, logger, serviceTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(
		adminRepo,
		auth.NewBcryptHasher(0),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.TokenExpiry,
		serviceTimeout,
	)

	board := view.NewEventsBoard(eventRepo)
	directory := view.NewAssociateDirectory(associateRepo)
	if err := board.Reload(ctx); err != nil {
		logger.Warn("initial events load failed", "err", err)
	}
	if err := directory.Reload(ctx); err != nil {
		logger.Warn("initial associates load failed", "err", err)
	}

	limiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
		IdleTTL: 10 * time.Minute,
	})

	mux := appHTTP.NewRouter(appHTTP.RouterConfig{
		Events:     controllers.NewEventController(logger, eventService, board, invalidator),
		Requests:   controllers.NewRequestController(logger, requestService, emailService, cfg.Mailer.AdminEmail, board, invalidator),
		Associates: controllers.NewAssociateController(logger, associateService, emailService, cfg.Mailer.AdminEmail, directory, invalidator),
		Locations:  controllers.NewLocationController(logger, locations.NewHTTPFetcher(http.DefaultClient, cfg.LocationsURL)),
		Auth:       controllers.NewAuthController(logger, authService),
		Mail:       controllers.NewMailController(logger, emailService, cfg.Mailer.AdminEmail),
		Verifier:   auth.NewJWTVerifier(cfg.JWTSecret),
		Limiter:    limiter,
		Cache:      cache,
		CacheTTL:   cfg.CacheTTL,
	})

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", "err", err)
		}
	}
	limiter.Stop()
}
