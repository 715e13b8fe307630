// Package main is the entry point for the labyrinth chunk server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/config"
	"github.com/samdwyer/labyrinth/internal/logging"
	"github.com/samdwyer/labyrinth/internal/server"
	"github.com/samdwyer/labyrinth/internal/telemetry"
	"github.com/samdwyer/labyrinth/internal/tileset"
	"github.com/samdwyer/labyrinth/internal/world"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides LABYRINTH_ADDR)")
	flag.Parse()

	// Not fatal: variables may be set directly.
	envErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Debug(".env file not loaded", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry.ConfigureHoneycomb(cfg.Honeycomb.APIKey, cfg.Honeycomb.Dataset)
	shutdown, err := telemetry.Setup(ctx, "labyrinthd")
	if err != nil {
		log.Warn("telemetry setup failed, running without traces", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	tiles, err := tileset.LoadRegistry()
	if err != nil {
		log.Fatal("load tile palette", zap.Error(err))
	}

	gen := world.NewGenerator(cfg.WorldExtent)
	srv := server.New(cfg.Addr, server.NewRouter(gen, tiles, log), log)

	log.Info("starting labyrinthd",
		zap.String("addr", cfg.Addr),
		zap.Int("world_extent", cfg.WorldExtent),
	)
	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		return
	}
	log.Info("labyrinthd stopped")
}
