// chess-server hosts chess matches over HTTP with websocket updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	// The default match must be valid before any room asks for it.
	if _, err := cfg.Match.NewMatch(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if cfg.Verbosity < 2 {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess matches. Each room holds one match; moves are posted\n")
	fmt.Fprintf(os.Stderr, "over HTTP or sent on the room's websocket.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEndpoints:\n")
	fmt.Fprintf(os.Stderr, "  POST /rooms               create a room\n")
	fmt.Fprintf(os.Stderr, "  GET  /rooms/:id           match snapshot\n")
	fmt.Fprintf(os.Stderr, "  GET  /rooms/:id/moves     destinations of ?from=\n")
	fmt.Fprintf(os.Stderr, "  POST /rooms/:id/moves     perform a move\n")
	fmt.Fprintf(os.Stderr, "  GET  /rooms/:id/ws        live updates\n")
}
