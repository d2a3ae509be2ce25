package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dialkey/identity-service/docs"
	"github.com/dialkey/identity-service/internal/api"
	"github.com/dialkey/identity-service/internal/core/ports"
	"github.com/dialkey/identity-service/internal/core/service"
	"github.com/dialkey/identity-service/internal/core/token"
	"github.com/dialkey/identity-service/internal/infrastructure/config"
	mongodb "github.com/dialkey/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/dialkey/identity-service/internal/infrastructure/db/redis"
	"github.com/dialkey/identity-service/internal/infrastructure/otp"
	"github.com/dialkey/identity-service/internal/infrastructure/queue"
	"github.com/dialkey/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Missing JWT_SECRET (or incomplete Twilio credentials) lands here.
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- OTP provider ---
	var provider ports.OTPProvider
	switch cfg.OTPProvider {
	case "twilio":
		provider = otp.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.VerifyServiceSID)
		log.Info().Msg("using twilio verify otp provider")
	default:
		provider = otp.NewLocalProvider(redisdb.NewCodeStore(rdb), log)
		log.Warn().Msg("using local otp provider, codes are written to the log")
	}

	// --- Core wiring ---
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token codec")
	}

	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, provider, codec, dispatcher, log)

	e := api.NewRouter(api.Dependencies{
		Mongo:       db,
		Redis:       rdb,
		Auth:        authService,
		Tokens:      codec,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
