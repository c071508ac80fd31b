package board

// Piece is the capability contract every piece variant implements.
// Implementations embed Base, which holds the position that only Board writes.
type Piece interface {
	// PossibleMoves returns a rows x columns matrix where a true cell is a
	// destination allowed by the piece's own movement rules.
	PossibleMoves() [][]bool

	// PossibleMove reports whether PossibleMoves marks the target cell.
	PossibleMove(target Position) bool

	// IsThereAnyPossibleMove reports whether PossibleMoves marks any cell.
	IsThereAnyPossibleMove() bool

	// Position returns the cell holding the piece, false when it is not placed.
	Position() (Position, bool)

	base() *Base
}

// View is the read-only face of a Board that pieces use for occupancy queries.
type View interface {
	Rows() int
	Columns() int
	Piece(pos Position) (Piece, error)
	HasPiece(pos Position) (bool, error)
	InBounds(pos Position) bool
}

// Base carries the board back-reference and recorded position of a piece.
// The board reference is non-owning; the position is set only by Board.
type Base struct {
	board    View
	position *Position
}

// NewBase creates the embeddable base of a piece used on b.
func NewBase(b View) Base {
	return Base{board: b}
}

// Board returns the board the piece reads occupancy from.
func (b *Base) Board() View {
	return b.board
}

// Position returns the cell holding the piece, false when it is not placed.
func (b *Base) Position() (Position, bool) {
	if b.position == nil {
		return Position{}, false
	}
	return *b.position, true
}

func (b *Base) base() *Base {
	return b
}

// NewMatrix allocates an all-false rows x columns move matrix.
func NewMatrix(rows, columns int) [][]bool {
	mat := make([][]bool, rows)
	for i := range mat {
		mat[i] = make([]bool, columns)
	}
	return mat
}

// At reports whether mat marks pos, treating cells outside mat as false.
func At(mat [][]bool, pos Position) bool {
	if pos.Row < 0 || pos.Row >= len(mat) {
		return false
	}
	row := mat[pos.Row]
	if pos.Column < 0 || pos.Column >= len(row) {
		return false
	}
	return row[pos.Column]
}

// AnyTrue reports whether mat marks at least one cell.
func AnyTrue(mat [][]bool) bool {
	for _, row := range mat {
		for _, cell := range row {
			if cell {
				return true
			}
		}
	}
	return false
}
