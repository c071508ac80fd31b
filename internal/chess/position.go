package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessmatch-go/internal/board"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// ChessPosition is an algebraic coordinate: a column letter 'a'-'h' and a
// row number 1-8 as printed on a board.
type ChessPosition struct {
	column byte
	row    int
}

// NewChessPosition creates an algebraic coordinate, rejecting anything
// outside a1..h8.
func NewChessPosition(column byte, row int) (ChessPosition, error) {
	if column < FirstCol || column > LastCol || row < FirstRow || row > LastRow {
		return ChessPosition{}, fmt.Errorf("%c%d: valid values are from a1 to h8: %w", column, row, errors.ErrInvalidPosition)
	}
	return ChessPosition{column: column, row: row}, nil
}

// ParseChessPosition parses a square such as "e2". The column letter may
// be upper case and surrounding whitespace is ignored.
func ParseChessPosition(s string) (ChessPosition, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return ChessPosition{}, fmt.Errorf("%q: want a column letter and a row number: %w", s, errors.ErrInvalidPosition)
	}
	column := s[0]
	if column >= 'A' && column <= 'Z' {
		column += 'a' - 'A'
	}
	if s[1] < '0' || s[1] > '9' {
		return ChessPosition{}, fmt.Errorf("%q: row is not a number: %w", s, errors.ErrInvalidPosition)
	}
	return NewChessPosition(column, int(s[1]-'0'))
}

// MustChessPosition is like ParseChessPosition but panics on invalid input.
// It is intended for fixed layouts.
func MustChessPosition(s string) ChessPosition {
	cp, err := ParseChessPosition(s)
	if err != nil {
		panic(err)
	}
	return cp
}

// FromPosition converts a matrix coordinate to its algebraic coordinate.
func FromPosition(p board.Position) (ChessPosition, error) {
	if p.Row < 0 || p.Row >= BoardSize || p.Column < 0 || p.Column >= BoardSize {
		return ChessPosition{}, fmt.Errorf("matrix position %v is off the board: %w", p, errors.ErrInvalidPosition)
	}
	return NewChessPosition(byte(FirstCol+p.Column), BoardSize-p.Row)
}

// Squares lists the cells a move matrix marks, rank 8 first and files in
// order within a rank.
func Squares(mat [][]bool) []ChessPosition {
	var list []ChessPosition
	for i, row := range mat {
		for j, marked := range row {
			if !marked {
				continue
			}
			if cp, err := FromPosition(board.Position{Row: i, Column: j}); err == nil {
				list = append(list, cp)
			}
		}
	}
	return list
}

// Column returns the column letter.
func (cp ChessPosition) Column() byte {
	return cp.column
}

// Row returns the row number.
func (cp ChessPosition) Row() int {
	return cp.row
}

// ToPosition converts the coordinate to matrix coordinates. Row 8 maps to
// matrix row 0.
func (cp ChessPosition) ToPosition() board.Position {
	return board.Position{Row: BoardSize - cp.row, Column: int(cp.column - FirstCol)}
}

// String returns the algebraic form, e.g. "e2".
func (cp ChessPosition) String() string {
	return fmt.Sprintf("%c%d", cp.column, cp.row)
}
