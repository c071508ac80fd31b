package chess

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	notnil "github.com/notnil/chess"

	chesserrors "github.com/lgbarn/chessmatch-go/internal/errors"
)

// legalMoveSet lists every legal move of the player to move as "e2e4".
func legalMoveSet(t *testing.T, m *Match) []string {
	t.Helper()
	var moves []string
	for _, p := range m.PiecesOnTheBoard() {
		if p.Colour() != m.CurrentPlayer() {
			continue
		}
		from, _ := p.ChessPosition()
		mat, err := m.LegalMoves(from)
		if errors.Is(err, chesserrors.ErrNoPossibleMove) {
			continue
		}
		if err != nil {
			t.Fatalf("LegalMoves(%s) error: %v", from, err)
		}
		for _, to := range Squares(mat) {
			moves = append(moves, from.String()+to.String())
		}
	}
	sort.Strings(moves)
	return moves
}

func oracleGame(t *testing.T, fen string) *notnil.Game {
	t.Helper()
	opt, err := notnil.FEN(fen)
	if err != nil {
		t.Fatalf("notnil.FEN(%q) error: %v", fen, err)
	}
	return notnil.NewGame(opt)
}

// oracleMoveSet lists the oracle's legal moves, collapsing promotion variants.
func oracleMoveSet(g *notnil.Game) []string {
	seen := map[string]bool{}
	var moves []string
	for _, mv := range g.ValidMoves() {
		s := mv.S1().String() + mv.S2().String()
		if !seen[s] {
			seen[s] = true
			moves = append(moves, s)
		}
	}
	sort.Strings(moves)
	return moves
}

var oracleFENs = []string{
	rooksFEN,
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
	"4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1",
	"k3r3/8/8/8/8/8/3rR3/4K3 w - - 0 1",
	"r1b1k2r/ppp2ppp/2n5/3q4/3P4/2N5/PP3PPP/R1BQKB1R w - - 0 1",
	"4k3/8/8/8/8/8/8/r3K3 w - - 0 1",
	"4k3/8/5N2/8/8/8/8/4K3 b - - 0 1",
	"8/8/8/3k4/8/3K4/8/8 w - - 0 1",
}

func TestLegalMoves_AgreeWithOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			got := legalMoveSet(t, mustFEN(t, fen))
			want := oracleMoveSet(oracleGame(t, fen))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("legal moves mismatch (-oracle +match):\n%s", diff)
			}
		})
	}
}

// TestPlayout_AgreesWithOracle plays the same moves in both engines and
// compares the legal move sets and piece placement after every ply.
func TestPlayout_AgreesWithOracle(t *testing.T) {
	const plies = 16

	// Pawnless so that en passant never arises.
	for _, fen := range []string{rooksFEN, "2b1k1n1/8/8/3q4/8/2N5/8/R1BQKB1R w - - 0 1"} {
		t.Run(fen, func(t *testing.T) {
			m := mustFEN(t, fen)
			g := oracleGame(t, fen)

			for ply := 0; ply < plies; ply++ {
				got := legalMoveSet(t, m)
				if diff := cmp.Diff(oracleMoveSet(g), got); diff != "" {
					t.Fatalf("ply %d: legal moves mismatch (-oracle +match):\n%s", ply, diff)
				}
				next, ok := pickMove(m, got, ply)
				if !ok {
					return
				}

				if _, err := m.PerformMove(sq(next[:2]), sq(next[2:])); err != nil {
					t.Fatalf("ply %d: PerformMove(%s) error: %v", ply, next, err)
				}
				if err := playOracle(g, next); err != nil {
					t.Fatalf("ply %d: oracle move %s error: %v", ply, next, err)
				}

				wantBoard := strings.Fields(g.FEN())[0]
				gotBoard := strings.Fields(m.FEN())[0]
				if gotBoard != wantBoard {
					t.Fatalf("ply %d after %s: placement %q; oracle %q", ply, next, gotBoard, wantBoard)
				}
			}
		})
	}
}

// pickMove chooses a deterministic move, preferring captures, and skips
// pawn moves to the last rank since promotion is not modelled.
func pickMove(m *Match, moves []string, ply int) (string, bool) {
	var candidates, captures []string
	for _, mv := range moves {
		from, to := sq(mv[:2]), sq(mv[2:])
		p := m.pieceAt(from.ToPosition())
		if p.Kind() == Pawn && (to.Row() == FirstRow || to.Row() == LastRow) {
			continue
		}
		candidates = append(candidates, mv)
		if m.pieceAt(to.ToPosition()) != nil {
			captures = append(captures, mv)
		}
	}
	if len(captures) > 0 {
		return captures[ply%len(captures)], true
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[(ply*7)%len(candidates)], true
}

func playOracle(g *notnil.Game, move string) error {
	for _, mv := range g.ValidMoves() {
		if mv.S1().String()+mv.S2().String() == move {
			return g.Move(mv)
		}
	}
	return errors.New("not a valid oracle move")
}
