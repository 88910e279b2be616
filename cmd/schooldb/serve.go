package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpx "schooldb/internal/http"
	"schooldb/internal/services/filters"
	"schooldb/internal/services/session"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP surface until SIGINT/SIGTERM
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve list sessions over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	client := newClient()
	sessions := session.NewRegistry(client, cfg.List.PageSize)

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:   cfg,
		Sessions: sessions,
		Filters:  filters.NewService(client),
	})

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()
	if cfg.Session.IdleTTLSec > 0 {
		reaper := session.NewReaper(sessions,
			time.Duration(cfg.Session.IdleTTLSec)*time.Second,
			time.Duration(cfg.Session.ReapEverySec)*time.Second)
		go reaper.Run(ctx)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("upstream", client.BaseURL()).
			Msgf("schooldb listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error().Err(err).Msg("server failed")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("server stopped")
	return nil
}
