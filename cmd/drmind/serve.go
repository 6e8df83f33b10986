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

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mrwolf/drmind/internal/api"
	"github.com/mrwolf/drmind/internal/backup"
	"github.com/mrwolf/drmind/internal/db"
	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/scheduler"
	"github.com/mrwolf/drmind/internal/sentiment"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server and background jobs",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	log.Info().Str("version", api.Version).Msg("Starting drmind...")

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info().Msg("Closing database...")
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Database close error")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	providers, err := newBackends(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer providers.Close()

	clock := clockwork.NewRealClock()
	random := fallback.NewRandomSource()

	// A nil *backup.Manager would not compare equal to nil inside the scheduler
	var backuper scheduler.Backuper
	if cfg.Backup.Enabled {
		backuper = backup.NewManager(cfg.Backup.Dir, database, clock)
	}

	board := scheduler.NewStatusBoard(providers.names()...)
	sched, err := scheduler.New(database, database, backuper, providers.checkers(), board, scheduler.Config{
		Timezone:       cfg.Timezone,
		HealthInterval: cfg.Providers.HealthInterval,
		Clock:          clock,
	})
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	router, err := api.NewRouter(cfg, api.Deps{
		Store:     database,
		Responder: providers.orchestrator(random),
		Scorer:    sentiment.NewLexicon(),
		Board:     board,
		Random:    random,
		Clock:     clock,
	})
	if err != nil {
		return fmt.Errorf("creating router: %w", err)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-done:
		log.Info().Msg("Shutting down gracefully...")
	case runErr = <-serveErr:
		log.Error().Err(runErr).Msg("Server error")
	}

	// Give ongoing requests 10 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Stopping scheduler...")
	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("Scheduler shutdown error")
	}

	log.Info().Msg("Server stopped")
	return runErr
}
