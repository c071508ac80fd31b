package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chessmatch-go/internal/chess"
)

// Snapshot is the JSON view of a match.
type Snapshot struct {
	FEN           string         `json:"fen"`
	Turn          int            `json:"turn"`
	CurrentPlayer string         `json:"currentPlayer"`
	Check         bool           `json:"check"`
	Board         [][]string     `json:"board"` // rank 8 first, "" for empty cells
	Captured      CapturedPieces `json:"captured"`
	History       []string       `json:"history"`
}

// CapturedPieces lists captured piece letters per colour of the piece.
type CapturedPieces struct {
	White []string `json:"white"`
	Black []string `json:"black"`
}

// NewSnapshot converts a match to its JSON view.
func NewSnapshot(m *chess.Match) *Snapshot {
	s := &Snapshot{
		FEN:           m.FEN(),
		Turn:          m.Turn(),
		CurrentPlayer: m.CurrentPlayer().String(),
		Check:         m.Check(),
		Captured: CapturedPieces{
			White: pieceLetters(m.Captured(chess.White)),
			Black: pieceLetters(m.Captured(chess.Black)),
		},
		History: []string{},
	}

	for _, row := range m.Pieces() {
		cells := make([]string, len(row))
		for j, p := range row {
			if p != nil {
				cells[j] = p.String()
			}
		}
		s.Board = append(s.Board, cells)
	}
	for _, mv := range m.History() {
		s.History = append(s.History, mv.String())
	}
	return s
}

// WriteSnapshotJSON writes the snapshot of m as indented JSON.
func WriteSnapshotJSON(w io.Writer, m *chess.Match) error {
	return writeJSON(w, NewSnapshot(m))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SquareNames lists the squares a move matrix marks, rank 8 first.
func SquareNames(mat [][]bool) []string {
	names := []string{}
	for _, cp := range chess.Squares(mat) {
		names = append(names, cp.String())
	}
	return names
}

func pieceLetters(pieces []*chess.Piece) []string {
	letters := make([]string, len(pieces))
	for i, p := range pieces {
		letters[i] = p.String()
	}
	return letters
}
