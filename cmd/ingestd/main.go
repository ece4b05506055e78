package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/api"
	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/logging"
	"sentinel-ingest-go/internal/services"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.Load()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Optionally tee logs into the embedded Logdy web viewer
	if cfg.LogdyEnabled {
		writer, url, err := logging.StartLogdy(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to start Logdy, continuing without it")
		} else {
			console := zerolog.ConsoleWriter{Out: os.Stderr}
			log.Logger = log.Output(io.MultiWriter(console, writer))
			log.Info().Str("url", url).Msg("Log viewer enabled")
		}
	}

	log.Info().
		Str("service_id", cfg.ServiceID).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("storage_backend", cfg.StorageBackend).
		Bool("nats_enabled", cfg.NatsEnabled).
		Msg("Starting alert ingestion service")

	// Wire repositories, storage, and the pipeline
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	// Create and start server
	server := api.NewServer(cfg, container)
	if err := server.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up server")
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown: stop accepting requests, then let detached
	// follow-up work (retention, notification, publishing) drain
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := container.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Services forced to shutdown")
	} else {
		log.Info().Msg("Shutdown complete")
	}
}
