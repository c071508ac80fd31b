package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/testutil"
)

// TestNewSnapshot verifies the JSON view after a capture
func TestNewSnapshot(t *testing.T) {
	m := testutil.MustMatch(t, chess.LayoutRooks)
	testutil.MustPerform(t, m, "c2", "c7")

	got := NewSnapshot(m)

	empty := []string{"", "", "", "", "", "", "", ""}
	want := &Snapshot{
		FEN:           "2rkr3/2Rrr3/8/8/8/8/3RR3/2RKR3 b - - 0 1",
		Turn:          2,
		CurrentPlayer: "Black",
		Check:         false,
		Board: [][]string{
			{"", "", "r", "k", "r", "", "", ""},
			{"", "", "R", "r", "r", "", "", ""},
			empty,
			empty,
			empty,
			empty,
			{"", "", "", "R", "R", "", "", ""},
			{"", "", "R", "K", "R", "", "", ""},
		},
		Captured: CapturedPieces{White: []string{}, Black: []string{"r"}},
		History:  []string{"Rc2xc7"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewSnapshot() mismatch (-want +got):\n%s", diff)
	}
}

// TestWriteSnapshotJSON verifies field names and empty lists
func TestWriteSnapshotJSON(t *testing.T) {
	m := testutil.MustMatch(t, chess.LayoutRooks)
	var buf bytes.Buffer

	testutil.AssertNoError(t, WriteSnapshotJSON(&buf, m))

	var decoded map[string]any
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"fen", "turn", "currentPlayer", "check", "board", "captured", "history"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("snapshot JSON missing %q", key)
		}
	}
	testutil.AssertContains(t, buf.String(), `"history": []`)
	testutil.AssertContains(t, buf.String(), `"white": []`)
}

// TestMatchWriter_JSON verifies the JSON writer output for a selection
func TestMatchWriter_JSON(t *testing.T) {
	m := testutil.MustMatch(t, chess.LayoutRooks)
	cfg := config.NewRenderConfig()
	cfg.Format = config.JSON

	var buf bytes.Buffer
	w, err := NewMatchWriter(&buf, cfg)
	testutil.AssertNoError(t, err)

	from := testutil.MustChessPosition(t, "e2")
	possible, err := m.PossibleMoves(from)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.WriteMoves(m, from, possible))

	var got MoveSet
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := MoveSet{From: "e2", Possible: []string{"e7", "e6", "e5", "e4", "e3", "f2", "g2", "h2"}}
	testutil.AssertEqual(t, got, want)
}

// TestMatchWriter_Text verifies the text writer delegates to the renderer
func TestMatchWriter_Text(t *testing.T) {
	m := testutil.MustMatch(t, chess.LayoutRooks)
	var buf bytes.Buffer

	w, err := NewMatchWriter(&buf, plainConfig())
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.WriteMatch(m))

	testutil.AssertContains(t, buf.String(), "  a b c d e f g h")
	testutil.AssertContains(t, buf.String(), "Waiting player: White")
}

// TestMatchWriter_Errors verifies error reports in both formats
func TestMatchWriter_Errors(t *testing.T) {
	m := testutil.MustMatch(t, chess.LayoutRooks)
	_, moveErr := m.PerformMove(testutil.MustChessPosition(t, "c7"), testutil.MustChessPosition(t, "c6"))
	testutil.AssertError(t, moveErr)

	var text bytes.Buffer
	tw, err := NewMatchWriter(&text, plainConfig())
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, tw.WriteError(moveErr))
	testutil.AssertEqual(t, text.String(), moveErr.Error()+"\n")

	cfg := config.NewRenderConfig()
	cfg.Format = config.JSON
	var js bytes.Buffer
	jw, err := NewMatchWriter(&js, cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, jw.WriteError(moveErr))

	var got ErrorReport
	testutil.AssertNoError(t, json.Unmarshal(js.Bytes(), &got))
	testutil.AssertEqual(t, got, ErrorReport{Error: moveErr.Error(), Reason: "the chosen piece is not yours"})
}

// TestNewMatchWriter_UnknownFormat verifies format validation
func TestNewMatchWriter_UnknownFormat(t *testing.T) {
	cfg := config.NewRenderConfig()
	cfg.Format = config.OutputFormat(5)

	_, err := NewMatchWriter(&bytes.Buffer{}, cfg)
	testutil.AssertError(t, err)
}

func TestSquareNames(t *testing.T) {
	testutil.AssertEqual(t, SquareNames(nil), []string{})

	mat := make([][]bool, chess.BoardSize)
	for i := range mat {
		mat[i] = make([]bool, chess.BoardSize)
	}
	mat[0][0] = true
	mat[7][7] = true
	testutil.AssertEqual(t, SquareNames(mat), []string{"a8", "h1"})
}
