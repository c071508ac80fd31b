// game.go - Interactive match loop
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	chesserrors "github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/output"
)

// errEndOfInput ends the session when the input is exhausted.
var errEndOfInput = errors.New("end of input")

// session reads squares from the players and writes the match after every
// step.
type session struct {
	cfg     *config.Config
	match   *chess.Match
	writer  output.MatchWriter
	scanner *bufio.Scanner
	prompts io.Writer
}

// play runs the match loop until in is exhausted. Rejected input is
// reported and the loop continues. In text format the square prompts are
// written to prompts; a nil prompts writer suppresses them.
func play(cfg *config.Config, m *chess.Match, in io.Reader, prompts io.Writer) error {
	w, err := output.NewMatchWriter(cfg.OutputFile, cfg.Render)
	if err != nil {
		return err
	}
	if cfg.Render.Format != config.Text {
		prompts = nil
	}
	s := &session{cfg: cfg, match: m, writer: w, scanner: bufio.NewScanner(in), prompts: prompts}

	for {
		err := s.turn()
		switch {
		case err == nil:
		case errors.Is(err, errEndOfInput):
			return nil
		case isInputError(err):
			s.cfg.Logf(2, "rejected: %v", err)
			if werr := s.writer.WriteError(err); werr != nil {
				return werr
			}
		default:
			return err
		}
	}
}

// turn plays a single move: show the match, read a source, show its
// destinations, read a target and perform the move.
func (s *session) turn() error {
	if err := s.writer.WriteMatch(s.match); err != nil {
		return err
	}

	source, err := s.readPosition("Source: ")
	if err != nil {
		return err
	}
	possible, err := s.match.PossibleMoves(source)
	if err != nil {
		return err
	}
	if err := s.writer.WriteMoves(s.match, source, possible); err != nil {
		return err
	}

	target, err := s.readPosition("Target: ")
	if err != nil {
		return err
	}
	captured, err := s.match.PerformMove(source, target)
	if err != nil {
		return err
	}

	history := s.match.History()
	s.cfg.Logf(2, "%d. %s", len(history), history[len(history)-1])
	if captured != nil {
		s.cfg.Logf(2, "captured %s %s", captured.Colour(), captured.Kind())
	}
	return nil
}

// readPosition prompts for and parses one square.
func (s *session) readPosition(prompt string) (chess.ChessPosition, error) {
	if s.prompts != nil {
		fmt.Fprint(s.prompts, "\n"+prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return chess.ChessPosition{}, err
		}
		return chess.ChessPosition{}, errEndOfInput
	}
	if s.prompts != nil {
		fmt.Fprintln(s.prompts)
	}
	return chess.ParseChessPosition(s.scanner.Text())
}

// isInputError reports errors a player can recover from by entering
// different squares.
func isInputError(err error) bool {
	return errors.Is(err, chesserrors.ErrIllegalMove) ||
		errors.Is(err, chesserrors.ErrInvalidPosition)
}
