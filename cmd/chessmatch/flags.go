// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/fatih/color"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
)

var (
	// Match setup
	layoutName = flag.String("layout", "rooks", "Initial layout: rooks, standard")
	fenString  = flag.String("fen", "", "Start from this FEN position (overrides -layout)")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	noColour     = flag.Bool("nocolor", false, "Disable ANSI colours")
	noHighlight  = flag.Bool("nohighlight", false, "Don't highlight possible moves")

	// Logging
	logFile   = flag.String("log", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", 1, "Verbosity: 0=silent, 1=lifecycle, 2=every move")

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
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}

	cfg.Verbosity = *verbosity
	cfg.Match.Layout = layout
	cfg.Match.FEN = *fenString
	cfg.Render.Format = format
	cfg.Render.Colour = !*noColour && !color.NoColor
	cfg.Render.Highlight = !*noHighlight
	return nil
}
