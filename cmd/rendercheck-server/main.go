// Package main provides the HTTP advisory server for rendercheck.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/rendercheck/internal/config"
	"github.com/raphaelgruber/rendercheck/internal/httpapi"
	"github.com/raphaelgruber/rendercheck/internal/service"
)

func main() {
	// Parse flags
	port := flag.String("port", "", "listen port (overrides RENDERCHECK_SERVER_PORT)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != "" {
		cfg.ServerPort = *port
	}

	// Initialize logging
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel, "http")
	defer cleanup()

	logger.Info("starting rendercheck-server", "port", cfg.ServerPort)

	vp := cfg.ValidationPolicy()
	advisor := service.NewAdvisorService(service.Options{
		Profile:    cfg.ProfilePolicy(),
		Validation: &vp,
		Logger:     logger,
	})
	api := httpapi.NewHandler(advisor, logger)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      api.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s/v1", cfg.ServerPort))
		logger.Info("metrics available", "url", fmt.Sprintf("http://localhost:%s/metrics", cfg.ServerPort))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
