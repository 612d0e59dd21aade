package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/catalogscrape/api"
	"github.com/use-agent/catalogscrape/api/handler"
	"github.com/use-agent/catalogscrape/config"
)

// ServeCmd runs the HTTP service until SIGINT or SIGTERM.
type ServeCmd struct {
	Port int `help:"Listen port (default from CATALOG_PORT)"`
}

// Run starts the server and drains in-flight requests on shutdown.
func (s *ServeCmd) Run(ctx context.Context, cfg *config.Config, runner handler.Runner) error {
	if s.Port > 0 {
		cfg.Server.Port = s.Port
	}

	slog.Info("catalogscrape starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"route", cfg.Server.Route,
		"extractMode", cfg.Scraper.ExtractMode,
	)

	// ── 1. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(runner, cfg, time.Now())

	// ── 2. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ── 3. Graceful shutdown ────────────────────────────────────────
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give in-flight requests 5 seconds to complete. Each one owns its
	// browser and tears it down when its context ends.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("catalogscrape stopped")
	return nil
}
