package testutil

import (
	"testing"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

// MustMatch creates a match with the given layout.
// It calls t.Fatal if setup fails.
func MustMatch(t *testing.T, layout chess.Layout) *chess.Match {
	t.Helper()
	m, err := chess.NewMatch(layout)
	if err != nil {
		t.Fatalf("failed to create %v match: %v", layout, err)
	}
	return m
}

// MustMatchFromFEN creates a match from a FEN string.
// It calls t.Fatal if the FEN is rejected.
func MustMatchFromFEN(t *testing.T, fen string) *chess.Match {
	t.Helper()
	m, err := chess.NewMatchFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load FEN %q: %v", fen, err)
	}
	return m
}

// MustChessPosition parses a square such as "e2".
func MustChessPosition(t *testing.T, square string) chess.ChessPosition {
	t.Helper()
	cp, err := chess.ParseChessPosition(square)
	if err != nil {
		t.Fatalf("invalid square %q: %v", square, err)
	}
	return cp
}

// MustPerform plays source-target and returns the captured piece, if any.
// It calls t.Fatal if the move is rejected.
func MustPerform(t *testing.T, m *chess.Match, source, target string) *chess.Piece {
	t.Helper()
	captured, err := m.PerformMove(MustChessPosition(t, source), MustChessPosition(t, target))
	if err != nil {
		t.Fatalf("move %s-%s rejected: %v", source, target, err)
	}
	return captured
}
