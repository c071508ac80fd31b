// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
)

var (
	// Listener
	addr     = flag.String("addr", ":8080", "TCP address to listen on")
	maxRooms = flag.Int("maxrooms", 64, "Maximum number of live rooms")

	// Default match setup for rooms created without a body
	layoutName = flag.String("layout", "rooks", "Default layout: rooks, standard")
	fenString  = flag.String("fen", "", "Default FEN position (overrides -layout)")

	// Logging
	logFile   = flag.String("log", "", "Write diagnostics to log file (default: stderr)")
	verbosity = flag.Int("v", 1, "Verbosity: 0=silent, 1=lifecycle, 2=every request")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	layout, err := chess.ParseLayout(*layoutName)
	if err != nil {
		return err
	}

	cfg.Verbosity = *verbosity
	cfg.Server.Addr = *addr
	cfg.Server.MaxRooms = *maxRooms
	cfg.Match.Layout = layout
	cfg.Match.FEN = *fenString
	return nil
}
