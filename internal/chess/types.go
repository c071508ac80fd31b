// Package chess implements the rules of a chess match on top of the generic
// matrix board: algebraic coordinates, the six piece variants, check
// detection and the move lifecycle of a Match.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind identifies a piece variant.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter of either case to a kind.
func KindFromLetter(c byte) (Kind, bool) {
	switch c {
	case 'P', 'p':
		return Pawn, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'R', 'r':
		return Rook, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	}
	return 0, false
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstCol = 'a'
	LastCol  = FirstCol + BoardSize - 1
	FirstRow = 1
	LastRow  = BoardSize
)

// ColourOffset returns the matrix row delta of a forward pawn step:
// -1 for White, who moves toward row 0, and +1 for Black.
func ColourOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}
