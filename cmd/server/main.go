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

	"github.com/chronoflow/chronoflow/internal/api"
	"github.com/chronoflow/chronoflow/internal/auth"
	"github.com/chronoflow/chronoflow/internal/config"
	"github.com/chronoflow/chronoflow/internal/scanner"
	"github.com/chronoflow/chronoflow/internal/storage/sqlite"
	"github.com/chronoflow/chronoflow/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// The scanner is the process-wide singleton that fires due events.
	// It starts with the server and is stopped on shutdown.
	eventScanner := scanner.New(store, slog.Default(), scanner.WithInterval(cfg.ScanInterval))
	eventScanner.Start()
	defer eventScanner.Stop()

	handler := api.NewHandler(store, authenticator, jwtManager, slog.Default(), cfg.UploadDir, cfg.MaxUploadBytes)
	router := api.NewRouter(handler, jwtManager, store, api.RouterConfig{
		CORSOrigin: cfg.CORSOrigin,
		StaticDir:  cfg.StaticDir,
		UploadDir:  cfg.UploadDir,
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}

	eventScanner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
