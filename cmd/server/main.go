package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rcbc-digital/enquiry-mail/internal/api"
	"github.com/rcbc-digital/enquiry-mail/internal/config"
	"github.com/rcbc-digital/enquiry-mail/internal/container"
	"github.com/rcbc-digital/enquiry-mail/internal/database"
	"github.com/rcbc-digital/enquiry-mail/internal/logger"
	"github.com/rcbc-digital/enquiry-mail/internal/mailparse"
	"github.com/rcbc-digital/enquiry-mail/internal/oplog"
	"github.com/rcbc-digital/enquiry-mail/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	slog.Info("Starting enquiry mail server...")

	db, err := database.Connect(cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := storage.NewLocalStore(cfg.MediaRoot)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	ops, err := oplog.New(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize file operations log: %w", err)
	}
	defer ops.Close()

	// Container decoders keyed by extension
	registry := container.NewRegistry()
	registry.Register(".eml", container.EMLReader{})

	resizer := mailparse.NewImageResizer(cfg.MaxImageSizeMB, cfg.MaxImageDimension, cfg.JPEGQuality, log, ops)
	extractor := mailparse.NewAttachmentExtractor(store, resizer, cfg.MediaURL, log)
	dates := mailparse.NewDateResolver(cfg.LocalLocation(), cfg.DisplayLocation(), log)
	direction := mailparse.NewDirectionClassifier(cfg.InboxAddress)
	parser := mailparse.NewParser(registry, dates, direction, extractor, log)

	e := api.NewRouter(&api.RouterConfig{
		DB:          db,
		Parser:      parser,
		Logger:      log,
		MediaRoot:   cfg.MediaRoot,
		MediaURL:    cfg.MediaURL,
		MaxUploadMB: cfg.MaxUploadSizeMB,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		slog.Info("HTTP server listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Shutting down server...", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
