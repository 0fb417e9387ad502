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

	"github.com/Bastianbone18/trasera/internal/config"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/repository"
	"github.com/Bastianbone18/trasera/internal/router"
	"github.com/Bastianbone18/trasera/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Trasera API
// @version 1.0
// @description API REST del e-commerce: catálogo, usuarios y órdenes.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey XToken
// @in header
// @name x-token
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in dev, JSON in prod
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else {
		log.Warn().Msg("REDIS_URL empty: product cache and order mails disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to the repositories and the mailer.
	var workers interface{ Wait() }
	if rdb != nil {
		mailer := infra.NewMailer(cfg, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
		workerHandlers := &worker.WorkerHandlers{
			Email: worker.NewEmailWorker(
				repository.NewOrdenRepository(db),
				repository.NewUsuarioRepository(db),
				mailer,
				cfg.PDFStoragePath,
			),
		}
		workers = worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	}

	r, err := router.New(cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("env", cfg.Env).Msgf("trasera API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	if workers != nil {
		workers.Wait()
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}
	if err := infra.CloseDatabase(db); err != nil {
		log.Error().Err(err).Msg("closing postgres")
	}
	log.Info().Msg("server exited")
}
