package chess

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewMatchFromFEN creates a match from a FEN string. Piece placement, side
// to move and fullmove number are used; castling and en passant fields are
// accepted and ignored.
func NewMatchFromFEN(fen string) (*Match, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	m, err := newMatch()
	if err != nil {
		return nil, err
	}

	if err := m.parsePiecePositions(parts[0]); err != nil {
		return nil, err
	}
	if err := m.parseSideToMove(parts); err != nil {
		return nil, err
	}
	if err := m.parseFullmove(parts); err != nil {
		return nil, err
	}
	if err := m.checkPlayable(); err != nil {
		return nil, err
	}
	return m, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func (m *Match) parsePiecePositions(positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != BoardSize {
		return fmt.Errorf("want %d ranks, got %d: %w", BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	for i, rankText := range ranks {
		row := LastRow - i
		// Files are counted as ints so a long rank cannot wrap around.
		file := 0
		for _, c := range rankText {
			if file >= BoardSize {
				return fmt.Errorf("rank %d overflows: %w", row, errors.ErrInvalidFEN)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if c > unicode.MaxASCII {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			kind, ok := KindFromLetter(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}

			colour := White
			if unicode.IsLower(c) {
				colour = Black
			}
			p, err := m.placeNewPiece(byte(FirstCol+file), row, kind, colour)
			if err != nil {
				return fmt.Errorf("%v: %w", err, errors.ErrInvalidFEN)
			}
			if kind == Pawn && row != pawnHomeRow(colour) {
				p.moveCount = 1
			}
			file++
		}
		if file != BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", row, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field; White when absent.
func (m *Match) parseSideToMove(parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		m.currentPlayer = White
	case "b":
		m.currentPlayer = Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseFullmove derives the turn from the fullmove number and side to move.
func (m *Match) parseFullmove(parts []string) error {
	fullmove := 1
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid fullmove number: %s: %w", parts[5], errors.ErrInvalidFEN)
		}
		fullmove = n
	}
	m.turn = 2*(fullmove-1) + 1
	if m.currentPlayer == Black {
		m.turn++
	}
	return nil
}

// checkPlayable requires one king per colour and a waiting player who is
// not in check, then records whether the player to move is in check.
func (m *Match) checkPlayable() error {
	for _, colour := range []Colour{White, Black} {
		kings := 0
		for _, p := range m.piecesOnTheBoard {
			if p.kind == King && p.colour == colour {
				kings++
			}
		}
		if kings != 1 {
			return fmt.Errorf("want one %s king, got %d: %w", colour, kings, errors.ErrInvalidFEN)
		}
	}

	waiting, err := m.testCheck(m.currentPlayer.Opposite())
	if err != nil {
		return err
	}
	if waiting {
		return fmt.Errorf("%s is in check but not to move: %w", m.currentPlayer.Opposite(), errors.ErrInvalidFEN)
	}

	m.check, err = m.testCheck(m.currentPlayer)
	return err
}

// FEN returns the position as a FEN string. Castling and en passant are
// not tracked and always written as "-".
func (m *Match) FEN() string {
	var sb strings.Builder

	m.writePiecePositions(&sb)
	if m.currentPlayer == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	fmt.Fprintf(&sb, " - - 0 %d", (m.turn+1)/2)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func (m *Match) writePiecePositions(sb *strings.Builder) {
	for i, row := range m.Pieces() {
		emptyCount := 0
		for _, p := range row {
			if p == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteString(p.String())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if i < BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

func pawnHomeRow(colour Colour) int {
	if colour == White {
		return 2
	}
	return 7
}
