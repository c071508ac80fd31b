package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	chesserrors "github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/output"
)

type createRoomRequest struct {
	Layout string `json:"layout"`
	FEN    string `json:"fen"`
}

type createRoomResponse struct {
	ID       string           `json:"id"`
	Snapshot *output.Snapshot `json:"snapshot"`
}

type movesResponse struct {
	From     string   `json:"from"`
	Possible []string `json:"possible"`
	Legal    []string `json:"legal"`
}

type moveRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type moveResponse struct {
	Captured *string          `json:"captured"`
	Snapshot *output.Snapshot `json:"snapshot"`
}

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

// createRoom starts a match from the request layout or FEN, falling back to
// the configured defaults. An empty body is allowed.
func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, fmt.Errorf("%v: %w", err, errBadRequest))
		return
	}

	mc := *s.cfg.Match
	if req.Layout != "" {
		layout, err := chess.ParseLayout(req.Layout)
		if err != nil {
			abortWithError(c, err)
			return
		}
		mc.Layout = layout
		mc.FEN = ""
	}
	if req.FEN != "" {
		mc.FEN = req.FEN
	}

	m, err := mc.NewMatch()
	if err != nil {
		abortWithError(c, err)
		return
	}
	room, err := s.NewRoom(m)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &createRoomResponse{ID: room.ID, Snapshot: room.Snapshot()})
}

func (s *Server) getRoom(c *gin.Context) {
	room, err := s.Room(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room.Snapshot())
}

func (s *Server) getMoves(c *gin.Context) {
	room, err := s.Room(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	from, err := chess.ParseChessPosition(c.Query("from"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	possible, legal, err := room.Moves(from)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, &movesResponse{
		From:     from.String(),
		Possible: output.SquareNames(possible),
		Legal:    output.SquareNames(legal),
	})
}

func (s *Server) postMove(c *gin.Context) {
	room, err := s.Room(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%v: %w", err, errBadRequest))
		return
	}

	captured, snap, err := s.perform(room, req.From, req.To)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp := &moveResponse{Snapshot: snap}
	if captured != "" {
		resp.Captured = &captured
	}
	c.JSON(http.StatusOK, resp)
}

// perform parses and plays a move on room; shared by HTTP and websocket.
func (s *Server) perform(room *Room, from, to string) (string, *output.Snapshot, error) {
	source, err := chess.ParseChessPosition(from)
	if err != nil {
		return "", nil, err
	}
	target, err := chess.ParseChessPosition(to)
	if err != nil {
		return "", nil, err
	}

	captured, snap, err := room.Perform(source, target)
	if err != nil {
		s.cfg.Logf(2, "room %s: %s-%s rejected: %v", room.ID, source, target, err)
		return "", nil, err
	}
	s.cfg.Logf(2, "room %s: %s", room.ID, snap.History[len(snap.History)-1])
	return captured, snap, nil
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, chesserrors.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, chesserrors.ErrInvalidPosition),
		errors.Is(err, chesserrors.ErrInvalidFEN),
		errors.Is(err, chesserrors.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRoomLimit):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorEvent(err error) *event {
	report := output.NewErrorReport(err)
	return &event{Type: "error", Error: report.Error, Reason: report.Reason}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), output.NewErrorReport(err))
}
