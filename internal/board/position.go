// Package board provides a generic matrix board game layer: matrix
// positions, a grid that owns piece placement, and the capability contract
// every piece implements.
package board

import "fmt"

// Position is a zero-based matrix coordinate. Row 0 is the top row of the grid.
type Position struct {
	Row    int
	Column int
}

// String returns the string representation of a position.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

// Offset returns the position moved by the given row and column deltas.
func (p Position) Offset(dRow, dColumn int) Position {
	return Position{Row: p.Row + dRow, Column: p.Column + dColumn}
}
