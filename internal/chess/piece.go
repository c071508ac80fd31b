package chess

import "github.com/lgbarn/chessmatch-go/internal/board"

// Piece is a chess piece. The variant is a closed set selected by Kind;
// only the move generation differs between variants.
type Piece struct {
	board.Base
	kind      Kind
	colour    Colour
	moveCount int
}

// NewPiece creates an unplaced piece that reads occupancy from b.
func NewPiece(b board.View, kind Kind, colour Colour) *Piece {
	return &Piece{Base: board.NewBase(b), kind: kind, colour: colour}
}

// Kind returns the piece variant.
func (p *Piece) Kind() Kind {
	return p.kind
}

// Colour returns the colour of the piece.
func (p *Piece) Colour() Colour {
	return p.colour
}

// MoveCount returns how many committed or in-flight moves the piece has made.
func (p *Piece) MoveCount() int {
	return p.moveCount
}

// String returns the FEN letter of the piece: upper case for White.
func (p *Piece) String() string {
	letter := p.kind.Letter()
	if p.colour == Black {
		letter += 'a' - 'A'
	}
	return string(letter)
}

// ChessPosition returns the algebraic coordinate of the piece, false when
// it is not placed.
func (p *Piece) ChessPosition() (ChessPosition, bool) {
	pos, ok := p.Position()
	if !ok {
		return ChessPosition{}, false
	}
	cp, err := FromPosition(pos)
	if err != nil {
		return ChessPosition{}, false
	}
	return cp, true
}

// PossibleMoves returns the destinations allowed by the piece's own
// movement rules. It does not consider whether the move exposes the king.
func (p *Piece) PossibleMoves() [][]bool {
	b := p.Board()
	mat := board.NewMatrix(b.Rows(), b.Columns())
	from, ok := p.Position()
	if !ok {
		return mat
	}

	switch p.kind {
	case Pawn:
		p.pawnMoves(mat, from)
	case Knight:
		p.stepMoves(mat, from, knightOffsets)
	case Bishop:
		p.slideMoves(mat, from, diagonalDirs)
	case Rook:
		p.slideMoves(mat, from, straightDirs)
	case Queen:
		p.slideMoves(mat, from, diagonalDirs)
		p.slideMoves(mat, from, straightDirs)
	case King:
		p.stepMoves(mat, from, kingOffsets)
	}
	return mat
}

// PossibleMove reports whether the piece may move to target.
func (p *Piece) PossibleMove(target board.Position) bool {
	return board.At(p.PossibleMoves(), target)
}

// IsThereAnyPossibleMove reports whether the piece has at least one destination.
func (p *Piece) IsThereAnyPossibleMove() bool {
	return board.AnyTrue(p.PossibleMoves())
}

// pieceAt returns the chess piece at pos, or nil when empty or off the board.
func (p *Piece) pieceAt(pos board.Position) *Piece {
	other, err := p.Board().Piece(pos)
	if err != nil || other == nil {
		return nil
	}
	cp, _ := other.(*Piece)
	return cp
}

// isOpponentAt reports whether an opposing piece occupies pos.
func (p *Piece) isOpponentAt(pos board.Position) bool {
	other := p.pieceAt(pos)
	return other != nil && other.colour != p.colour
}

func (p *Piece) isEmptyAt(pos board.Position) bool {
	has, err := p.Board().HasPiece(pos)
	return err == nil && !has
}
