package board

import "github.com/lgbarn/chessmatch-go/internal/errors"

// Board is a fixed-size grid of optional pieces. It owns placement: a cell
// holds at most one piece and a placed piece records exactly that cell.
type Board struct {
	rows    int
	columns int
	pieces  [][]Piece
}

// New creates an empty board with the given dimensions.
func New(rows, columns int) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, &errors.BoardError{Op: "new", Row: rows, Column: columns, Reason: errors.ErrInvalidDimensions}
	}
	pieces := make([][]Piece, rows)
	for i := range pieces {
		pieces[i] = make([]Piece, columns)
	}
	return &Board{rows: rows, columns: columns, pieces: pieces}, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Columns returns the number of columns.
func (b *Board) Columns() int {
	return b.columns
}

// InBounds reports whether pos lies on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Column >= 0 && pos.Column < b.columns
}

// Piece returns the piece at pos, or nil for an empty cell.
func (b *Board) Piece(pos Position) (Piece, error) {
	if !b.InBounds(pos) {
		return nil, outOfBounds("piece", pos)
	}
	return b.pieces[pos.Row][pos.Column], nil
}

// HasPiece reports whether a piece occupies pos.
func (b *Board) HasPiece(pos Position) (bool, error) {
	if !b.InBounds(pos) {
		return false, outOfBounds("has piece", pos)
	}
	return b.pieces[pos.Row][pos.Column] != nil, nil
}

// Place puts p on pos and records pos as the piece's position.
// No rule checking happens here.
func (b *Board) Place(p Piece, pos Position) error {
	if !b.InBounds(pos) {
		return outOfBounds("place", pos)
	}
	if b.pieces[pos.Row][pos.Column] != nil {
		return &errors.BoardError{Op: "place", Row: pos.Row, Column: pos.Column, Reason: errors.ErrOccupied}
	}
	base := p.base()
	if base.position != nil {
		return &errors.BoardError{Op: "place", Row: base.position.Row, Column: base.position.Column, Reason: errors.ErrAlreadyPlaced}
	}

	b.pieces[pos.Row][pos.Column] = p
	base.position = &pos
	return nil
}

// Remove clears pos and returns the piece that was there, or nil.
// The removed piece no longer records a position.
func (b *Board) Remove(pos Position) (Piece, error) {
	if !b.InBounds(pos) {
		return nil, outOfBounds("remove", pos)
	}
	p := b.pieces[pos.Row][pos.Column]
	if p == nil {
		return nil, nil
	}
	p.base().position = nil
	b.pieces[pos.Row][pos.Column] = nil
	return p, nil
}

func outOfBounds(op string, pos Position) error {
	return &errors.BoardError{Op: op, Row: pos.Row, Column: pos.Column, Reason: errors.ErrOutOfBounds}
}
