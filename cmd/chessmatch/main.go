// chessmatch plays a chess match between two players at one console.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessmatch-go/internal/config"
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
		fmt.Printf("chessmatch version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	logOut := setupLogFile(cfg)
	out := setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	m, err := cfg.Match.NewMatch()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	cfg.Logf(1, "starting match: %s", m.FEN())

	// Prompts stay on the terminal when the match goes to a file.
	prompts := io.Writer(os.Stdout)
	if out != nil {
		prompts = os.Stderr
	}

	err = play(cfg, m, os.Stdin, prompts)
	cfg.Logf(1, "session ended after %d moves", len(m.History()))
	closeFile(out)
	closeFile(logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// closeFile flushes and closes a file opened by the setup helpers.
func closeFile(f *os.File) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing %s: %v\n", f.Name(), err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags and
// returns it, or nil when logging stays on stderr.
func setupLogFile(cfg *config.Config) *os.File {
	if *logFile == "" {
		return nil
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
	return file
}

// setupOutputFile configures the output file based on command-line flags
// and returns it, or nil when output stays on stdout.
func setupOutputFile(cfg *config.Config) *os.File {
	if *outputFile == "" {
		return nil
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
	// Escape codes are for terminals only.
	cfg.Render.Colour = false
	return file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessmatch [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays a chess match at the console. Each move is entered as a source\n")
	fmt.Fprintf(os.Stderr, "square followed by a target square, e.g. c2 then c7.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nLayouts (-layout):\n")
	fmt.Fprintf(os.Stderr, "  rooks     King and five rooks per side (default)\n")
	fmt.Fprintf(os.Stderr, "  standard  Standard opening position\n")
}
