package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostalcentro/sistema-clientes/internal/api"
	"github.com/hostalcentro/sistema-clientes/internal/core/service"
	"github.com/hostalcentro/sistema-clientes/internal/infrastructure/config"
	"github.com/hostalcentro/sistema-clientes/internal/infrastructure/db/postgres"
	redisdb "github.com/hostalcentro/sistema-clientes/internal/infrastructure/db/redis"
	"github.com/hostalcentro/sistema-clientes/internal/infrastructure/queue"
	"github.com/hostalcentro/sistema-clientes/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Core ---
	clienteRepo := postgres.NewClienteRepository(db)
	clienteService := service.NewClienteService(clienteRepo, log)

	dedup := redisdb.NewDedupChecker(rdb)
	infraccionService := service.NewInfraccionService(clienteRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.Workers, infraccionService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(clienteService, dispatcher, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server shut down")
}
