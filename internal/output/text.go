// Package output renders matches as text diagrams and JSON snapshots.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
)

// plainMarker follows a highlighted cell when colours are off.
const plainMarker = '*'

// TextRenderer draws the board and match status.
type TextRenderer struct {
	w   io.Writer
	cfg *config.RenderConfig

	white     *color.Color
	black     *color.Color
	highlight *color.Color
	alert     *color.Color
}

// NewTextRenderer creates a renderer writing to w. Colours are forced on or
// off according to cfg.Colour, independent of terminal detection.
func NewTextRenderer(w io.Writer, cfg *config.RenderConfig) *TextRenderer {
	r := &TextRenderer{
		w:         w,
		cfg:       cfg,
		white:     color.New(color.FgHiWhite, color.Bold),
		black:     color.New(color.FgYellow, color.Bold),
		highlight: color.New(color.BgBlue),
		alert:     color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.white, r.black, r.highlight, r.alert} {
		if cfg.Colour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// RenderBoard draws the board, rank 8 first. Cells marked in possible are
// highlighted when highlighting is enabled; possible may be nil.
func (r *TextRenderer) RenderBoard(m *chess.Match, possible [][]bool) error {
	var sb strings.Builder

	for i, row := range m.Pieces() {
		fmt.Fprintf(&sb, "%d ", chess.LastRow-i)
		for j, p := range row {
			marked := r.cfg.Highlight && possible != nil && possible[i][j]
			sb.WriteString(r.cell(p, marked))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// cell renders one square followed by its separator.
func (r *TextRenderer) cell(p *chess.Piece, marked bool) string {
	symbol := "-"
	if p != nil {
		symbol = p.String()
	}

	if !marked {
		if p == nil {
			return symbol + " "
		}
		return r.pieceColour(p).Sprint(symbol) + " "
	}
	if !r.cfg.Colour {
		return symbol + string(plainMarker)
	}
	if p == nil {
		return r.highlight.Sprint(symbol) + " "
	}
	c := color.New(color.BgBlue)
	c.Add(pieceAttribute(p))
	c.EnableColor()
	return c.Sprint(symbol) + " "
}

func (r *TextRenderer) pieceColour(p *chess.Piece) *color.Color {
	if p.Colour() == chess.White {
		return r.white
	}
	return r.black
}

func pieceAttribute(p *chess.Piece) color.Attribute {
	if p.Colour() == chess.White {
		return color.FgHiWhite
	}
	return color.FgYellow
}

// RenderStatus writes the captured pieces, the turn, the waiting player and
// a check warning.
func (r *TextRenderer) RenderStatus(m *chess.Match) error {
	var sb strings.Builder

	sb.WriteString("\nCaptured pieces:\n")
	fmt.Fprintf(&sb, "White: %s\n", r.white.Sprint(listPieces(m.Captured(chess.White))))
	fmt.Fprintf(&sb, "Black: %s\n", r.black.Sprint(listPieces(m.Captured(chess.Black))))
	fmt.Fprintf(&sb, "\nTurn: %d\n", m.Turn())
	fmt.Fprintf(&sb, "Waiting player: %s\n", m.CurrentPlayer())
	if m.Check() {
		sb.WriteString(r.alert.Sprint("CHECK!") + "\n")
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// RenderMatch draws the board followed by the status lines.
func (r *TextRenderer) RenderMatch(m *chess.Match) error {
	if err := r.RenderBoard(m, nil); err != nil {
		return err
	}
	return r.RenderStatus(m)
}

// RenderError prints err highlighted as an alert.
func (r *TextRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.w, r.alert.Sprint(err.Error()))
	return werr
}

func listPieces(pieces []*chess.Piece) string {
	return "[" + strings.Join(pieceLetters(pieces), ", ") + "]"
}
