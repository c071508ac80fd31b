package chess

import "strings"

// Move records a committed move.
type Move struct {
	// Turn the move was played on (1-based, one per committed move).
	Turn int

	// Player who made the move.
	Player Colour

	// The piece that moved.
	Piece Kind

	// Source and destination squares.
	Source ChessPosition
	Target ChessPosition

	// The piece captured, valid only when Capture is set.
	Captured Kind
	Capture  bool

	// Whether the move left the opponent in check.
	Check bool
}

// String returns the move in long algebraic form, e.g. "Rc2xc7" or "Ra1a8+".
// Pawn moves carry no piece letter.
func (m Move) String() string {
	var sb strings.Builder
	if m.Piece != Pawn {
		sb.WriteByte(m.Piece.Letter())
	}
	sb.WriteString(m.Source.String())
	if m.Capture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.Target.String())
	if m.Check {
		sb.WriteByte('+')
	}
	return sb.String()
}
