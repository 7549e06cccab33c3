package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/smilecare/clinic-api/internal/api"
	"github.com/smilecare/clinic-api/internal/core/service"
	mongodb "github.com/smilecare/clinic-api/internal/infrastructure/db/mongo"
	redisdb "github.com/smilecare/clinic-api/internal/infrastructure/db/redis"
	"github.com/smilecare/clinic-api/internal/infrastructure/queue"
	"github.com/smilecare/clinic-api/internal/pkg/config"
	"github.com/smilecare/clinic-api/pkg/logger"

	_ "github.com/smilecare/clinic-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title           SmileCare Clinic API
// @version         1.0
// @description     REST API for patient registration, login and appointment booking.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.IsDevSecret() {
		log.Warn().Msg("JWT_SECRET not set, using development default; do not run production with it")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	apptRepo := mongodb.NewAppointmentRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := apptRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("appointment index creation failed")
	}

	// --- Core services ---
	hasher := service.NewBcryptHasher()
	signer := service.NewJWTSigner(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Cooldown)

	dispatcher := queue.NewDispatcher(0, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, hasher, signer, throttle, log)
	apptService := service.NewAppointmentService(apptRepo, userRepo, dispatcher, log)

	if err := authService.EnsureStaffAccount(ctx, cfg.Seed.StaffName, cfg.Seed.StaffEmail, cfg.Seed.StaffPassword); err != nil {
		log.Fatal().Err(err).Msg("staff seed failed")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		DB:           db,
		Redis:        rdb,
		Auth:         authService,
		Appointments: apptService,
		Signer:       signer,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
