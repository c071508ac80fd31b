// Package server hosts chess matches over HTTP and websockets.
//
// Each room owns one match. Every operation on a room runs under the room's
// lock, so move validation, execution and rollback are never interleaved
// with another request for the same match.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gin-gonic/gin"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
)

// Server errors.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomLimit    = errors.New("room limit reached")
)

const (
	shutdownTimeout = 5 * time.Second
	nameAttempts    = 8
)

// Server is the match server.
type Server struct {
	cfg    *config.Config
	router *gin.Engine

	mu    sync.Mutex
	rooms map[string]*Room
}

// New creates a server with its routes installed. Requests are logged to
// cfg.LogFile at verbosity 2 and above; recovered panics always go there.
func New(cfg *config.Config) *Server {
	// Handlers log from many goroutines.
	logCfg := *cfg
	w := cfg.LogFile
	if w == nil {
		w = io.Discard
	}
	logCfg.LogFile = &syncWriter{w: w}

	s := &Server{
		cfg:   &logCfg,
		rooms: make(map[string]*Room),
	}

	r := gin.New()
	if logCfg.Verbosity >= 2 {
		r.Use(gin.LoggerWithWriter(logCfg.LogFile))
	}
	r.Use(gin.RecoveryWithWriter(logCfg.LogFile))
	s.routes(r)
	s.router = r
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.POST("/rooms", s.createRoom)
	r.GET("/rooms/:id", s.getRoom)
	r.GET("/rooms/:id/moves", s.getMoves)
	r.POST("/rooms/:id/moves", s.postMove)
	r.GET("/rooms/:id/ws", s.subscribe)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then closes
// every room and shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logf(1, "listening on %s", s.cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closeRooms()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.cfg.Logf(1, "server stopped")
	return nil
}

// NewRoom creates a room holding m under a fresh name.
func (s *Server) NewRoom(m *chess.Match) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rooms) >= s.cfg.Server.MaxRooms {
		return nil, fmt.Errorf("%d rooms open: %w", len(s.rooms), ErrRoomLimit)
	}

	id := ""
	for i := 0; i < nameAttempts && (id == "" || s.rooms[id] != nil); i++ {
		id = petname.Generate(2+i/2, "-")
	}
	if s.rooms[id] != nil {
		return nil, fmt.Errorf("no free room name after %d attempts: %w", nameAttempts, ErrRoomLimit)
	}

	room := newRoom(id, m)
	s.rooms[id] = room
	s.cfg.Logf(1, "room %s created (%d open)", id, len(s.rooms))
	return room, nil
}

// Room returns the room with the given id.
func (s *Server) Room(id string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrRoomNotFound)
	}
	return room, nil
}

func (s *Server) closeRooms() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, room := range s.rooms {
		room.close()
		delete(s.rooms, id)
	}
}

// syncWriter serialises writes to a shared log destination.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}
