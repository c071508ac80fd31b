package chess

import "github.com/lgbarn/chessmatch-go/internal/board"

// Direction and offset tables as {row delta, column delta}.
var (
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// slideMoves marks every cell along each direction up to and including the
// first occupied one, which counts only when it holds an opponent.
func (p *Piece) slideMoves(mat [][]bool, from board.Position, dirs [][2]int) {
	b := p.Board()
	for _, dir := range dirs {
		pos := from.Offset(dir[0], dir[1])
		for b.InBounds(pos) && p.isEmptyAt(pos) {
			mat[pos.Row][pos.Column] = true
			pos = pos.Offset(dir[0], dir[1])
		}
		if b.InBounds(pos) && p.isOpponentAt(pos) {
			mat[pos.Row][pos.Column] = true
		}
	}
}

// stepMoves marks each offset cell that is empty or holds an opponent.
func (p *Piece) stepMoves(mat [][]bool, from board.Position, offsets [][2]int) {
	b := p.Board()
	for _, offset := range offsets {
		pos := from.Offset(offset[0], offset[1])
		if !b.InBounds(pos) {
			continue
		}
		if p.isEmptyAt(pos) || p.isOpponentAt(pos) {
			mat[pos.Row][pos.Column] = true
		}
	}
}

// pawnMoves marks the forward steps onto empty cells, the double step of an
// unmoved pawn, and the forward diagonal captures.
func (p *Piece) pawnMoves(mat [][]bool, from board.Position) {
	b := p.Board()
	dir := ColourOffset(p.colour)

	one := from.Offset(dir, 0)
	if b.InBounds(one) && p.isEmptyAt(one) {
		mat[one.Row][one.Column] = true

		two := from.Offset(2*dir, 0)
		if p.moveCount == 0 && b.InBounds(two) && p.isEmptyAt(two) {
			mat[two.Row][two.Column] = true
		}
	}

	for _, dc := range []int{-1, 1} {
		diag := from.Offset(dir, dc)
		if b.InBounds(diag) && p.isOpponentAt(diag) {
			mat[diag.Row][diag.Column] = true
		}
	}
}
