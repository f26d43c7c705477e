// Package main provides the entry point for the rendercheck MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/rendercheck/internal/config"
	"github.com/raphaelgruber/rendercheck/internal/server"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/raphaelgruber/rendercheck/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel, "mcp")
	defer cleanup()

	logger.Info("rendercheck-mcp starting",
		"version", version,
		"max_client_boundaries", cfg.MaxClientBoundaries,
		"client_share", cfg.ClientShare,
		"assume_static_ui", cfg.AssumeStaticUI,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	vp := cfg.ValidationPolicy()
	advisor := service.NewAdvisorService(service.Options{
		Profile:    cfg.ProfilePolicy(),
		Validation: &vp,
		Logger:     logger,
	})

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	deps := &tools.Dependencies{
		Advisor: advisor,
		Logger:  logger,
		Version: version,
	}
	tools.RegisterAll(srv.MCPServer(), deps)

	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
