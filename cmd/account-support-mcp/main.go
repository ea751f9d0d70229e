// ABOUTME: Entry point for the account-support MCP server.
// ABOUTME: Loads config, wires the tool registry and transport, runs until signaled.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/fintools/account-support-mcp/internal/config"
	"github.com/fintools/account-support-mcp/internal/mcp"
	"github.com/fintools/account-support-mcp/internal/server"
	"github.com/fintools/account-support-mcp/internal/session"
	"github.com/fintools/account-support-mcp/internal/tools"
)

var version = "dev"

const banner = `
                _
  __ _  ___ ___| |_      _ __ ___   ___ _ __
 / _' |/ __/ __| __|____| '_ ' _ \ / __| '_ \
| (_| | (_| (__| ||_____| | | | | | (__| |_) |
 \__,_|\___\___|\__|    |_| |_| |_|\___| .__/
                                       |_|
`

// getConfigPath returns the path to the config file.
// Priority: -config flag > ACCOUNT_MCP_CONFIG env var > none (defaults).
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("ACCOUNT_MCP_CONFIG")
}

func main() {
	configFlag := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, getConfigPath(*configFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	// Load configuration
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	logger := setupLogger(cfg.Logging)

	// Startup info
	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	if configPath != "" {
		fmt.Printf("Config:  %s\n", configPath)
	} else {
		fmt.Printf("Config:  (defaults)\n")
	}
	green.Print("    ▶ ")
	fmt.Printf("HTTP:    %s\n", cfg.Server.HTTPAddr)
	if cfg.Server.ExternalBaseURL != "" {
		green.Print("    ▶ ")
		fmt.Printf("Base:    %s\n", cfg.Server.ExternalBaseURL)
	}
	fmt.Println()

	// Dataset and tools
	store := tools.NewStore()
	registry := tools.NewRegistry(logger)
	if err := tools.RegisterAccountTools(registry, store); err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}

	dispatcher, err := mcp.NewDispatcher(mcp.Config{
		Registry: registry,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}

	sessions := session.NewRegistry(cfg.Session.QueueSize, logger)

	var metrics *server.Metrics
	if cfg.Metrics.Enabled {
		metrics = server.NewMetrics()
	}

	srv, err := server.NewServer(server.Config{
		Sessions:        sessions,
		Dispatcher:      dispatcher,
		Tools:           registry,
		Store:           store,
		Logger:          logger,
		Metrics:         metrics,
		AllowedOrigins:  cfg.Origins.Allowed,
		ExternalBaseURL: cfg.Server.ExternalBaseURL,
		PingInterval:    cfg.Session.PingInterval,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(cfg.Metrics.Path),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting account-support-mcp",
			"http_addr", cfg.Server.HTTPAddr,
			"tools", registry.Len(),
			"queue_size", cfg.Session.QueueSize,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	// Open SSE streams see the base context cancel and exit; give the rest
	// of the connections a few seconds to drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
