package chess

import (
	"fmt"
	"slices"

	"github.com/lgbarn/chessmatch-go/internal/board"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// Match is the state machine of a single game. It owns its board and is
// mutated only through PerformMove. A Match is not safe for concurrent use;
// hosts that share one must hold a single lock across each call.
type Match struct {
	board         *board.Board
	turn          int
	currentPlayer Colour
	check         bool

	// Every piece ever placed is in exactly one of these.
	piecesOnTheBoard []*Piece
	capturedPieces   []*Piece

	history []Move
}

// execution records what makeMove changed so undoMove can revert it exactly.
type execution struct {
	source        board.Position
	target        board.Position
	moved         *Piece
	captured      *Piece
	capturedIndex int
}

// newMatch creates a match with an empty 8x8 board, White to move on turn 1.
func newMatch() (*Match, error) {
	b, err := board.New(BoardSize, BoardSize)
	if err != nil {
		return nil, err
	}
	return &Match{
		board:         b,
		turn:          1,
		currentPlayer: White,
	}, nil
}

// Turn returns the current turn number, starting at 1.
func (m *Match) Turn() int {
	return m.turn
}

// CurrentPlayer returns the colour to move.
func (m *Match) CurrentPlayer() Colour {
	return m.currentPlayer
}

// Check reports whether the player to move is in check.
func (m *Match) Check() bool {
	return m.check
}

// Pieces returns a snapshot of the board, row 0 being rank 8.
func (m *Match) Pieces() [][]*Piece {
	mat := make([][]*Piece, m.board.Rows())
	for i := range mat {
		mat[i] = make([]*Piece, m.board.Columns())
		for j := range mat[i] {
			mat[i][j] = m.pieceAt(board.Position{Row: i, Column: j})
		}
	}
	return mat
}

// PiecesOnTheBoard returns the pieces currently in play.
func (m *Match) PiecesOnTheBoard() []*Piece {
	return slices.Clone(m.piecesOnTheBoard)
}

// CapturedPieces returns the pieces removed from play, in capture order.
func (m *Match) CapturedPieces() []*Piece {
	return slices.Clone(m.capturedPieces)
}

// Captured returns the captured pieces of the given colour, in capture order.
func (m *Match) Captured(colour Colour) []*Piece {
	var list []*Piece
	for _, p := range m.capturedPieces {
		if p.colour == colour {
			list = append(list, p)
		}
	}
	return list
}

// History returns the committed moves in order.
func (m *Match) History() []Move {
	return slices.Clone(m.history)
}

// PossibleMoves validates source as a selectable piece of the current player
// and returns its destinations under the piece's own movement rules.
func (m *Match) PossibleMoves(source ChessPosition) ([][]bool, error) {
	p, err := m.validateSourcePosition(source)
	if err != nil {
		return nil, err
	}
	return p.PossibleMoves(), nil
}

// LegalMoves is PossibleMoves without the destinations that would leave the
// current player's king in check. The match state is unchanged afterwards.
func (m *Match) LegalMoves(source ChessPosition) ([][]bool, error) {
	p, err := m.validateSourcePosition(source)
	if err != nil {
		return nil, err
	}
	from := source.ToPosition()
	mat := p.PossibleMoves()
	for i := range mat {
		for j := range mat[i] {
			if !mat[i][j] {
				continue
			}
			selfCheck, err := m.tryMove(from, board.Position{Row: i, Column: j})
			if err != nil {
				return nil, err
			}
			mat[i][j] = !selfCheck
		}
	}
	return mat, nil
}

// PerformMove moves the current player's piece from source to target and
// returns the captured piece, or nil. A rejected move leaves the match
// exactly as it was.
func (m *Match) PerformMove(source, target ChessPosition) (*Piece, error) {
	from := source.ToPosition()
	to := target.ToPosition()

	p, err := m.validateSourcePosition(source)
	if err != nil {
		return nil, err
	}
	if err := m.validateTargetPosition(p, source, target); err != nil {
		return nil, err
	}

	ex, err := m.makeMove(from, to)
	if err != nil {
		return nil, err
	}

	selfCheck, err := m.testCheck(m.currentPlayer)
	if err == nil && selfCheck {
		err = &errors.MoveError{Source: source.String(), Target: target.String(), Reason: errors.ErrSelfCheck}
	}
	var check bool
	if err == nil {
		check, err = m.testCheck(m.currentPlayer.Opposite())
	}
	if err != nil {
		if undoErr := m.undoMove(ex); undoErr != nil {
			return nil, undoErr
		}
		return nil, err
	}

	m.check = check
	m.history = append(m.history, m.record(ex, source, target))
	m.nextTurn()
	return ex.captured, nil
}

// InCheck reports whether the king of the given colour is attacked by any
// opposing piece on the board.
func (m *Match) InCheck(colour Colour) (bool, error) {
	return m.testCheck(colour)
}

func (m *Match) validateSourcePosition(source ChessPosition) (*Piece, error) {
	p := m.pieceAt(source.ToPosition())
	if p == nil {
		return nil, &errors.MoveError{Source: source.String(), Reason: errors.ErrNoPiece}
	}
	if p.colour != m.currentPlayer {
		return nil, &errors.MoveError{Source: source.String(), Reason: errors.ErrNotYourPiece}
	}
	if !p.IsThereAnyPossibleMove() {
		return nil, &errors.MoveError{Source: source.String(), Reason: errors.ErrNoPossibleMove}
	}
	return p, nil
}

func (m *Match) validateTargetPosition(p *Piece, source, target ChessPosition) error {
	if !p.PossibleMove(target.ToPosition()) {
		return &errors.MoveError{Source: source.String(), Target: target.String(), Reason: errors.ErrInvalidTarget}
	}
	return nil
}

// makeMove relocates the piece on from to to, capturing whatever stands there.
func (m *Match) makeMove(from, to board.Position) (execution, error) {
	removed, err := m.board.Remove(from)
	if err != nil {
		return execution{}, err
	}
	moved, ok := removed.(*Piece)
	if !ok {
		return execution{}, fmt.Errorf("no chess piece on %v: %w", from, errors.ErrIntegrity)
	}
	moved.moveCount++
	ex := execution{source: from, target: to, moved: moved, capturedIndex: -1}

	taken, err := m.board.Remove(to)
	if err != nil {
		return ex, err
	}
	if err := m.board.Place(moved, to); err != nil {
		return ex, err
	}

	if taken != nil {
		captured := taken.(*Piece)
		ex.captured = captured
		ex.capturedIndex = slices.Index(m.piecesOnTheBoard, captured)
		if ex.capturedIndex >= 0 {
			m.piecesOnTheBoard = slices.Delete(m.piecesOnTheBoard, ex.capturedIndex, ex.capturedIndex+1)
		}
		m.capturedPieces = append(m.capturedPieces, captured)
	}
	return ex, nil
}

// undoMove is the exact inverse of makeMove, including set order.
func (m *Match) undoMove(ex execution) error {
	if _, err := m.board.Remove(ex.target); err != nil {
		return err
	}
	ex.moved.moveCount--
	if err := m.board.Place(ex.moved, ex.source); err != nil {
		return err
	}

	if ex.captured != nil {
		if err := m.board.Place(ex.captured, ex.target); err != nil {
			return err
		}
		m.capturedPieces = m.capturedPieces[:len(m.capturedPieces)-1]
		if ex.capturedIndex >= 0 {
			m.piecesOnTheBoard = slices.Insert(m.piecesOnTheBoard, ex.capturedIndex, ex.captured)
		}
	}
	return nil
}

// tryMove plays from-to, tests whether the current player is left in check,
// and takes the move back.
func (m *Match) tryMove(from, to board.Position) (bool, error) {
	ex, err := m.makeMove(from, to)
	if err != nil {
		return false, err
	}
	selfCheck, err := m.testCheck(m.currentPlayer)
	if undoErr := m.undoMove(ex); undoErr != nil {
		return false, undoErr
	}
	return selfCheck, err
}

func (m *Match) nextTurn() {
	m.turn++
	m.currentPlayer = m.currentPlayer.Opposite()
}

func (m *Match) record(ex execution, source, target ChessPosition) Move {
	mv := Move{
		Turn:   m.turn,
		Player: m.currentPlayer,
		Piece:  ex.moved.kind,
		Source: source,
		Target: target,
		Check:  m.check,
	}
	if ex.captured != nil {
		mv.Captured = ex.captured.kind
		mv.Capture = true
	}
	return mv
}

// pieceAt returns the chess piece at pos, or nil.
func (m *Match) pieceAt(pos board.Position) *Piece {
	p, err := m.board.Piece(pos)
	if err != nil || p == nil {
		return nil
	}
	cp, _ := p.(*Piece)
	return cp
}

// placeNewPiece puts a new piece of the match on an algebraic square.
func (m *Match) placeNewPiece(column byte, row int, kind Kind, colour Colour) (*Piece, error) {
	cp, err := NewChessPosition(column, row)
	if err != nil {
		return nil, err
	}
	p := NewPiece(m.board, kind, colour)
	if err := m.board.Place(p, cp.ToPosition()); err != nil {
		return nil, errors.Wrapf(err, "place %s %s on %s", colour, kind, cp)
	}
	m.piecesOnTheBoard = append(m.piecesOnTheBoard, p)
	return p, nil
}
