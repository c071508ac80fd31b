package chess

import (
	"fmt"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// testCheck returns true if the given colour's king is attacked by any
// opposing piece on the board.
func (m *Match) testCheck(colour Colour) (bool, error) {
	king, err := m.king(colour)
	if err != nil {
		return false, err
	}
	kingPos, ok := king.Position()
	if !ok {
		return false, fmt.Errorf("%s king is in play but not placed: %w", colour, errors.ErrIntegrity)
	}

	for _, p := range m.piecesOnTheBoard {
		if p.colour == colour {
			continue
		}
		if p.PossibleMove(kingPos) {
			return true, nil
		}
	}
	return false, nil
}

// king finds the king of the given colour among the pieces in play.
func (m *Match) king(colour Colour) (*Piece, error) {
	for _, p := range m.piecesOnTheBoard {
		if p.kind == King && p.colour == colour {
			return p, nil
		}
	}
	return nil, fmt.Errorf("there is no %s king on the board: %w", colour, errors.ErrIntegrity)
}
