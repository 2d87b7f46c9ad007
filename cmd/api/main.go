package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/webmcpsetup/internal/api/router"
	"github.com/wolfman30/webmcpsetup/internal/app/bootstrap"
	appconfig "github.com/wolfman30/webmcpsetup/internal/config"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

func main() {
	// Optional local overrides; a missing .env is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting webmcpsetup server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap.NewRuntime(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build runtime", "error", err)
		os.Exit(1)
	}
	rt.Start(ctx)

	srv := newServer(cfg, buildRouter(rt))

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight relays finish before the failure drain stops.
	rt.Drain()
	cancel()

	fmt.Println("server exited")
}

func buildRouter(rt *bootstrap.Runtime) http.Handler {
	return router.New(&router.Config{
		Logger:             rt.Logger,
		Site:               rt.Site,
		IntakeHandler:      rt.Intake,
		ToolsHandler:       rt.ToolsAPI,
		LeadsHandler:       rt.Leads,
		MCPHandler:         rt.MCP,
		MetricsHandler:     rt.MetricsHandler(),
		CORSAllowedOrigins: rt.Config.CORSAllowedOrigins,
	})
}

func newServer(cfg *appconfig.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
