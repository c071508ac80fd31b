package config

import (
	"fmt"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// OutputFormat selects how a match is written after each move.
type OutputFormat int

const (
	Text OutputFormat = iota // Board diagram with status lines
	JSON                     // Snapshot document
)

// String returns the flag name of the format.
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	}
	return "unknown"
}

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return Text, fmt.Errorf("unknown output format %q: %w", name, errors.ErrInvalidConfig)
}

// RenderConfig holds settings for writing matches.
type RenderConfig struct {
	Format OutputFormat

	// Colour enables ANSI colours for pieces and highlighted cells.
	Colour bool

	// Highlight marks possible destinations after a source is chosen.
	Highlight bool
}

// NewRenderConfig creates a RenderConfig for coloured text with highlighting.
func NewRenderConfig() *RenderConfig {
	return &RenderConfig{Format: Text, Colour: true, Highlight: true}
}

// Validate checks that the section is present and the format known.
func (r *RenderConfig) Validate() error {
	if r == nil {
		return fmt.Errorf("missing render section: %w", errors.ErrInvalidConfig)
	}
	if r.Format != Text && r.Format != JSON {
		return fmt.Errorf("output format %d: %w", r.Format, errors.ErrInvalidConfig)
	}
	return nil
}
