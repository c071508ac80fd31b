package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// Layout selects the initial placement of a new match.
type Layout int

const (
	// LayoutRooks places a king and five rooks per side.
	LayoutRooks Layout = iota
	// LayoutStandard is the standard opening position.
	LayoutStandard
)

// String returns the configuration name of a layout.
func (l Layout) String() string {
	switch l {
	case LayoutRooks:
		return "rooks"
	case LayoutStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// ParseLayout converts a configuration name to a layout.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rooks", "":
		return LayoutRooks, nil
	case "standard":
		return LayoutStandard, nil
	}
	return 0, fmt.Errorf("unknown layout %q: %w", name, errors.ErrInvalidConfig)
}

// placement is one piece of a fixed layout.
type placement struct {
	square string
	kind   Kind
	colour Colour
}

var rookLayout = []placement{
	{"c1", Rook, White},
	{"c2", Rook, White},
	{"d2", Rook, White},
	{"e2", Rook, White},
	{"e1", Rook, White},
	{"d1", King, White},

	{"c7", Rook, Black},
	{"c8", Rook, Black},
	{"d7", Rook, Black},
	{"e7", Rook, Black},
	{"e8", Rook, Black},
	{"d8", King, Black},
}

// backRank is the piece order on ranks 1 and 8 of the standard layout.
var backRank = []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func standardLayout() []placement {
	var list []placement
	for col := 0; col < BoardSize; col++ {
		file := string(rune(FirstCol + col))
		list = append(list,
			placement{file + "1", backRank[col], White},
			placement{file + "2", Pawn, White},
			placement{file + "7", Pawn, Black},
			placement{file + "8", backRank[col], Black},
		)
	}
	return list
}

// NewMatch creates a match with the given initial layout, White to move.
func NewMatch(layout Layout) (*Match, error) {
	var list []placement
	switch layout {
	case LayoutRooks:
		list = rookLayout
	case LayoutStandard:
		list = standardLayout()
	default:
		return nil, fmt.Errorf("layout %d: %w", layout, errors.ErrInvalidConfig)
	}

	m, err := newMatch()
	if err != nil {
		return nil, err
	}
	for _, pl := range list {
		cp := MustChessPosition(pl.square)
		if _, err := m.placeNewPiece(cp.Column(), cp.Row(), pl.kind, pl.colour); err != nil {
			return nil, err
		}
	}
	return m, nil
}
