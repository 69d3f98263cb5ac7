package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/tabledata/internal/codec"
	"github.com/JonMunkholm/tabledata/internal/config"
	"github.com/JonMunkholm/tabledata/internal/logging"
	"github.com/JonMunkholm/tabledata/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"data_dir", cfg.Storage.Dir,
		"data_format", cfg.Storage.Format,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
	)

	session, err := codec.NewSession(cfg.Storage.Dir)
	if err != nil {
		slog.Error("failed to open data directory", "dir", cfg.Storage.Dir, "error", err)
		os.Exit(1)
	}
	defer session.Close()

	server := web.NewServer(session, web.Options{
		MaxUploadSize:        cfg.Upload.MaxFileSize,
		MaxConcurrentUploads: cfg.Upload.MaxConcurrent,
		MaxUploadWait:        cfg.Upload.MaxWaitTime,
		RequestTimeout:       cfg.Server.RequestTimeout,
		Encoding:             cfg.Upload.Encoding,
		Separator:            cfg.Upload.SeparatorRune(),
		DefaultFormat:        cfg.DataFormat(),
		TrustedProxies:       cfg.Security.TrustedProxies,
	})

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	err = server.Start(cfg.Server.Addr(), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
