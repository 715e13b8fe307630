// Package main is the entry point for the labyrinth terminal viewer.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/client"
	"github.com/samdwyer/labyrinth/internal/config"
	"github.com/samdwyer/labyrinth/internal/logging"
	"github.com/samdwyer/labyrinth/internal/telemetry"
	"github.com/samdwyer/labyrinth/internal/tileset"
	"github.com/samdwyer/labyrinth/internal/ui"
	"github.com/samdwyer/labyrinth/internal/viewer"
)

func main() {
	seed := flag.String("seed", "", "world seed (overrides LABYRINTH_SEED)")
	serverURL := flag.String("server", "", "chunk server URL (overrides LABYRINTH_SERVER_URL)")
	flag.Parse()

	// Load .env file for local development
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *seed != "" {
		cfg.Seed = *seed
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	logger, err := logging.NewViewer(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry.ConfigureHoneycomb(cfg.Honeycomb.APIKey, cfg.Honeycomb.Dataset)
	shutdown, err := telemetry.Setup(ctx, "labyrinth")
	if err != nil {
		logger.Warn("telemetry setup failed", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	tiles, err := tileset.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load tile palette: %v", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	fetcher := client.New(cfg.ServerURL, cfg.FetchTimeout, logger)
	loader := client.NewLoader(fetcher, client.NewCache(cfg.CacheDistance), cfg.Seed, cfg.WorldExtent, logger)
	v := viewer.New(screen, ui.NewRenderer(screen, tiles), loader, cfg.WorldExtent, logger)

	if err := v.Run(ctx); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}
