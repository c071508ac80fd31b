// Package errors provides sentinel errors and error types for the chess match engine.
// It defines the three failure kinds of the engine (board, illegal move and
// integrity) and structured error types that preserve context while allowing
// inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the engine matches exactly one of
// ErrBoard, ErrIllegalMove or ErrIntegrity, or one of the input errors below.
var (
	// ErrBoard indicates a bounds, occupancy or geometry violation on the board.
	ErrBoard = errors.New("board error")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrIntegrity indicates a broken match invariant, such as a missing king.
	ErrIntegrity = errors.New("match integrity violation")
)

// Board error reasons.
var (
	// ErrInvalidDimensions indicates a board built with a non-positive size.
	ErrInvalidDimensions = errors.New("board needs at least one row and one column")

	// ErrOutOfBounds indicates a position outside the board.
	ErrOutOfBounds = errors.New("position is not on the board")

	// ErrOccupied indicates a placement onto an occupied cell.
	ErrOccupied = errors.New("there is already a piece on position")

	// ErrAlreadyPlaced indicates a placement of a piece that is still on the board.
	ErrAlreadyPlaced = errors.New("piece is already placed")
)

// Illegal move reasons.
var (
	// ErrNoPiece indicates an empty source square.
	ErrNoPiece = errors.New("there is no piece on source position")

	// ErrNotYourPiece indicates a source piece that belongs to the waiting player.
	ErrNotYourPiece = errors.New("the chosen piece is not yours")

	// ErrNoPossibleMove indicates a source piece with no destination at all.
	ErrNoPossibleMove = errors.New("there is no possible move for the chosen piece")

	// ErrInvalidTarget indicates a destination the piece cannot reach.
	ErrInvalidTarget = errors.New("the chosen piece cannot move to target position")

	// ErrSelfCheck indicates a move that would leave the mover's king attacked.
	ErrSelfCheck = errors.New("you cannot put yourself in check")
)

// Input errors.
var (
	// ErrInvalidPosition indicates an algebraic coordinate outside a1..h8.
	ErrInvalidPosition = errors.New("invalid chess position")

	// ErrInvalidFEN indicates a malformed or unplayable FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// BoardError reports a board operation that failed on a given cell.
// It unwraps to both ErrBoard and the specific reason.
type BoardError struct {
	Op     string // The board operation ("place", "remove", ...)
	Row    int    // Matrix row of the offending position
	Column int    // Matrix column of the offending position
	Reason error  // One of the board error reasons
}

// Error returns the operation, the position and the reason.
func (e *BoardError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	parts = append(parts, fmt.Sprintf("position (%d, %d)", e.Row, e.Column))
	context := strings.Join(parts, " ")
	if e.Reason != nil {
		return fmt.Sprintf("%s: %s: %v", ErrBoard, context, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrBoard, context)
}

// Unwrap exposes the error kind and the reason to errors.Is() and errors.As().
func (e *BoardError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrBoard}
	}
	return []error{ErrBoard, e.Reason}
}

// MoveError reports a rejected move. The match state is unchanged when it
// is returned. It unwraps to both ErrIllegalMove and the specific reason.
type MoveError struct {
	Source string // Algebraic source square (e.g. "e2")
	Target string // Algebraic target square, empty while selecting a source
	Reason error  // One of the illegal move reasons
}

// Error returns the squares involved and the reason.
func (e *MoveError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, "from "+e.Source)
	}
	if e.Target != "" {
		parts = append(parts, "to "+e.Target)
	}

	msg := ErrIllegalMove.Error()
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}
	return msg
}

// Unwrap exposes the error kind and the reason to errors.Is() and errors.As().
func (e *MoveError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrIllegalMove}
	}
	return []error{ErrIllegalMove, e.Reason}
}

// Reason returns the specific reason carried by a BoardError or MoveError
// anywhere in err's chain, or err itself when there is none.
func Reason(err error) error {
	var me *MoveError
	if errors.As(err, &me) && me.Reason != nil {
		return me.Reason
	}
	var be *BoardError
	if errors.As(err, &be) && be.Reason != nil {
		return be.Reason
	}
	return err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
