// Package config provides configuration for the chessmatch programs.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=errors and lifecycle, 2=running commentary

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	Match  *MatchConfig
	Render *RenderConfig
	Server *ServerConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Match:      NewMatchConfig(),
		Render:     NewRenderConfig(),
		Server:     NewServerConfig(),
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...any) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.OutputFile == nil || c.LogFile == nil {
		return fmt.Errorf("output and log writers must be set: %w", errors.ErrInvalidConfig)
	}
	for _, section := range []interface{ Validate() error }{c.Match, c.Render, c.Server} {
		if err := section.Validate(); err != nil {
			return err
		}
	}
	return nil
}
