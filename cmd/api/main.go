// Command api runs the banking HTTP service.
//
// @title           Banking System API
// @version         1.0
// @description     Balance mutation service: deposits, withdrawals and transfers.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	"github.com/simplebanking/banking-system/internal/api"
	"github.com/simplebanking/banking-system/internal/core/service"
	"github.com/simplebanking/banking-system/internal/infrastructure/config"
	mongodb "github.com/simplebanking/banking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/simplebanking/banking-system/internal/infrastructure/db/redis"
	"github.com/simplebanking/banking-system/pkg/logger"
)

func main() {
	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "banking-api",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(startupCtx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(startupCtx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)
	if err := userRepo.EnsureIndexes(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := ledgerRepo.EnsureIndexes(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("account indexes failed")
	}

	// Provision the bootstrap admin when credentials are configured.
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	if err := authService.EnsureAdmin(startupCtx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
