package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/transparent-bg/internal/config"
	"github.com/ironsheep/transparent-bg/internal/logging"
	"github.com/ironsheep/transparent-bg/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("transparent-bg-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("transparent-bg-mcp - MCP server for background removal")
			fmt.Println()
			fmt.Println("Usage: transparent-bg-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  TRANSPARENT_BG_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  TRANSPARENT_BG_THRESHOLD=250      Default threshold for tool calls")
			fmt.Println("  TRANSPARENT_BG_INK=#000000        Default ink colour for tool calls")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg := config.DefaultConfig()
	cfg.LogLevel = "warn"
	if err := cfg.FromEnv(os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout is for MCP protocol.
	logger := logging.New(logging.ParseLevel(cfg.LogLevel, slog.LevelWarn))
	logger.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, logger, Version)
	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil && err != context.Canceled {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
