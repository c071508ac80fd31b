package config

import (
	"fmt"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// MatchConfig selects how new matches are set up.
type MatchConfig struct {
	// Layout is used when FEN is empty.
	Layout chess.Layout

	// FEN, when set, overrides Layout.
	FEN string
}

// NewMatchConfig creates a MatchConfig for the rooks layout.
func NewMatchConfig() *MatchConfig {
	return &MatchConfig{Layout: chess.LayoutRooks}
}

// Validate checks that the layout is known. A FEN string is only checked
// when a match is created from it.
func (m *MatchConfig) Validate() error {
	if m == nil {
		return fmt.Errorf("missing match section: %w", errors.ErrInvalidConfig)
	}
	switch m.Layout {
	case chess.LayoutRooks, chess.LayoutStandard:
		return nil
	}
	return fmt.Errorf("unknown layout %d: %w", m.Layout, errors.ErrInvalidConfig)
}

// NewMatch creates a match from the FEN string if one is set, otherwise
// from the layout.
func (m *MatchConfig) NewMatch() (*chess.Match, error) {
	if m.FEN != "" {
		return chess.NewMatchFromFEN(m.FEN)
	}
	return chess.NewMatch(m.Layout)
}
