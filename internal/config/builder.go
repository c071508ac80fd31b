package config

import (
	"io"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithLayout sets the initial layout of new matches.
func (b *ConfigBuilder) WithLayout(layout chess.Layout) *ConfigBuilder {
	b.cfg.Match.Layout = layout
	return b
}

// WithFEN sets a starting position that overrides the layout.
func (b *ConfigBuilder) WithFEN(fen string) *ConfigBuilder {
	b.cfg.Match.FEN = fen
	return b
}

// WithFormat sets the output format.
func (b *ConfigBuilder) WithFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Render.Format = format
	return b
}

// WithColour enables or disables ANSI colours.
func (b *ConfigBuilder) WithColour(enabled bool) *ConfigBuilder {
	b.cfg.Render.Colour = enabled
	return b
}

// WithHighlight enables or disables possible-move highlighting.
func (b *ConfigBuilder) WithHighlight(enabled bool) *ConfigBuilder {
	b.cfg.Render.Highlight = enabled
	return b
}

// WithAddr sets the server listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithMaxRooms sets the server room limit.
func (b *ConfigBuilder) WithMaxRooms(n int) *ConfigBuilder {
	b.cfg.Server.MaxRooms = n
	return b
}
