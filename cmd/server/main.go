package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cataldo/internal/config"
	"cataldo/internal/infra"
	"cataldo/internal/repository"
	"cataldo/internal/router"
	"cataldo/internal/service"
	"cataldo/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background goroutines: email worker pool, delivery retry cron and the
	// birthday greeting cron. All wired at the composition root so they share
	// the same repositories and SMTP client as the HTTP layer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	correoRepo := repository.NewCorreoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	handlers := worker.Handlers{
		Email: worker.NewEmailWorker(correoRepo, mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartRetryCron(ctx, correoRepo, dispatcher)

	cumpleanosSvc := service.NewCumpleanosService(
		usuarioRepo, correoRepo, mailer, service.NewAuditService(auditRepo), cfg.CumpleanosTZ,
	)
	worker.StartCumpleanosCron(ctx, cumpleanosSvc, worker.CumpleanosCronConfig{
		Hora:     cfg.CumpleanosHora,
		Timezone: cfg.CumpleanosTZ,
	})

	r := router.New(cfg, db, rdb, mailer, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Cataldo backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel() // stop workers and crons

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
