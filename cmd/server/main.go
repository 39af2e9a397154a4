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

	"clinicore/internal/config"
	"clinicore/internal/infra"
	"clinicore/internal/repository"
	"clinicore/internal/router"
	"clinicore/internal/service"
	"clinicore/internal/store"
	"clinicore/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	prodDB, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to production database")
	}
	demoDB, err := infra.NewDatabase(cfg.DemoDatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to demo database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// Redis only backs the render cache; the API works without it.
		log.Warn().Err(err).Msg("redis unavailable, render caching disabled")
		rdb = nil
	}

	tmpl, err := infra.NewTemplateStore(cfg.TemplatePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load invoice template")
	}

	authSvc := service.NewAuthService(repository.NewUserRepository(prodDB), cfg)
	if err := authSvc.SeedDefaults(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default accounts")
	}

	dispatcher := worker.NewDispatcher(rdb)
	stores := store.NewRouter(prodDB, demoDB, tmpl, rdb, dispatcher, cfg)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if rdb != nil {
		worker.StartPool(workerCtx, rdb, stores, cfg.WorkerPoolSize)
	}

	engine := router.New(cfg, stores, authSvc, prodDB, demoDB, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	stopWorkers()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
