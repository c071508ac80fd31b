package output

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// MatchWriter is the interface for writing a match to output.
// Different implementations handle different output formats (text, JSON).
type MatchWriter interface {
	// WriteMatch writes the whole match state.
	WriteMatch(m *chess.Match) error

	// WriteMoves writes the match with the possible destinations of the
	// piece that was just selected.
	WriteMoves(m *chess.Match, source chess.ChessPosition, possible [][]bool) error

	// WriteError reports a rejected input.
	WriteError(err error) error
}

// NewMatchWriter returns the writer for the configured format.
func NewMatchWriter(w io.Writer, cfg *config.RenderConfig) (MatchWriter, error) {
	switch cfg.Format {
	case config.Text:
		return &TextWriter{r: NewTextRenderer(w, cfg)}, nil
	case config.JSON:
		return &JSONWriter{w: w}, nil
	}
	return nil, fmt.Errorf("output format %v: %w", cfg.Format, errors.ErrInvalidConfig)
}

// TextWriter writes board diagrams.
type TextWriter struct {
	r *TextRenderer
}

// WriteMatch draws the board and status lines.
func (tw *TextWriter) WriteMatch(m *chess.Match) error {
	return tw.r.RenderMatch(m)
}

// WriteMoves redraws the board with possible destinations highlighted.
func (tw *TextWriter) WriteMoves(m *chess.Match, _ chess.ChessPosition, possible [][]bool) error {
	return tw.r.RenderBoard(m, possible)
}

// WriteError prints the error on its own line.
func (tw *TextWriter) WriteError(err error) error {
	return tw.r.RenderError(err)
}

// JSONWriter writes one JSON document per call.
type JSONWriter struct {
	w io.Writer
}

// MoveSet is the JSON view of a selected piece's destinations.
type MoveSet struct {
	From     string   `json:"from"`
	Possible []string `json:"possible"`
}

// ErrorReport is the JSON view of a rejected input.
type ErrorReport struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// NewErrorReport describes err; Reason is set for illegal moves.
func NewErrorReport(err error) *ErrorReport {
	report := &ErrorReport{Error: err.Error()}
	if stderrors.Is(err, errors.ErrIllegalMove) {
		report.Reason = errors.Reason(err).Error()
	}
	return report
}

// WriteMatch writes the match snapshot.
func (jw *JSONWriter) WriteMatch(m *chess.Match) error {
	return WriteSnapshotJSON(jw.w, m)
}

// WriteMoves writes the destinations of source.
func (jw *JSONWriter) WriteMoves(_ *chess.Match, source chess.ChessPosition, possible [][]bool) error {
	return writeJSON(jw.w, &MoveSet{From: source.String(), Possible: SquareNames(possible)})
}

// WriteError writes an error report.
func (jw *JSONWriter) WriteError(err error) error {
	return writeJSON(jw.w, NewErrorReport(err))
}
