package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/output"
)

const (
	writeWait = 5 * time.Second

	// sendQueueSize bounds the events waiting for one subscriber. A
	// subscriber that falls this far behind is disconnected.
	sendQueueSize = 16
)

// Room is one hosted match and its websocket subscribers.
type Room struct {
	ID string

	// mu guards match and subscribers. Events are queued under mu, so every
	// subscriber sees snapshots in commit order; the sockets are written by
	// each subscriber's own goroutine.
	mu          sync.Mutex
	match       *chess.Match
	subscribers map[*subscriber]struct{}
}

// subscriber is one websocket and its outbound queue.
type subscriber struct {
	conn *websocket.Conn
	out  chan *event
	done chan struct{}

	// closeReason is set before out is closed and read after.
	closeReason string
}

// event is a message pushed to subscribers.
type event struct {
	Type     string           `json:"type"` // "snapshot" or "error"
	Snapshot *output.Snapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

func newRoom(id string, m *chess.Match) *Room {
	return &Room{
		ID:          id,
		match:       m,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Snapshot returns the current state of the match.
func (r *Room) Snapshot() *output.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return output.NewSnapshot(r.match)
}

// Moves returns the possible and the legal destinations of the piece on from.
func (r *Room) Moves(from chess.ChessPosition) (possible, legal [][]bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	possible, err = r.match.PossibleMoves(from)
	if err != nil {
		return nil, nil, err
	}
	legal, err = r.match.LegalMoves(from)
	if err != nil {
		return nil, nil, err
	}
	return possible, legal, nil
}

// Perform plays from-to and queues the new snapshot for every subscriber.
// It returns the captured piece letter, or "" when nothing was captured.
func (r *Room) Perform(from, to chess.ChessPosition) (string, *output.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	captured, err := r.match.PerformMove(from, to)
	if err != nil {
		return "", nil, err
	}

	snap := output.NewSnapshot(r.match)
	for sub := range r.subscribers {
		r.enqueueLocked(sub, &event{Type: "snapshot", Snapshot: snap})
	}

	if captured == nil {
		return "", snap, nil
	}
	return captured.String(), snap, nil
}

// Subscribers returns the number of connected websockets.
func (r *Room) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

// subscribe registers conn, queues the current snapshot for it and starts
// its writer.
func (r *Room) subscribe(conn *websocket.Conn) *subscriber {
	sub := &subscriber{
		conn: conn,
		out:  make(chan *event, sendQueueSize),
		done: make(chan struct{}),
	}
	go sub.writeLoop()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[sub] = struct{}{}
	r.enqueueLocked(sub, &event{Type: "snapshot", Snapshot: output.NewSnapshot(r.match)})
	return sub
}

// unsubscribe stops sub and waits until its writer has closed the socket.
func (r *Room) unsubscribe(sub *subscriber) {
	r.mu.Lock()
	r.dropLocked(sub, "")
	r.mu.Unlock()
	<-sub.done
}

// sendError reports a rejected request to a single subscriber.
func (r *Room) sendError(sub *subscriber, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enqueueLocked(sub, errorEvent(err))
}

// enqueueLocked queues ev without blocking. A full queue drops the
// subscriber.
func (r *Room) enqueueLocked(sub *subscriber, ev *event) {
	if _, ok := r.subscribers[sub]; !ok {
		return
	}
	select {
	case sub.out <- ev:
	default:
		r.dropLocked(sub, "subscriber too slow")
	}
}

// dropLocked removes sub and closes its queue; the writer then sends a close
// frame carrying reason, if any, and closes the socket.
func (r *Room) dropLocked(sub *subscriber, reason string) {
	if _, ok := r.subscribers[sub]; !ok {
		return
	}
	delete(r.subscribers, sub)
	sub.closeReason = reason
	close(sub.out)
}

func (r *Room) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sub := range r.subscribers {
		r.dropLocked(sub, "server shutting down")
	}
}

// writeLoop writes queued events until the queue is closed. After a failed
// write the socket is closed and the rest of the queue is discarded.
func (sub *subscriber) writeLoop() {
	defer close(sub.done)
	defer sub.conn.Close()

	for ev := range sub.out {
		if err := writeEvent(sub.conn, ev); err != nil {
			sub.conn.Close()
			for range sub.out {
			}
			return
		}
	}
	if sub.closeReason != "" {
		//nolint:errcheck // best effort; the connection is closed regardless
		sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, sub.closeReason),
			time.Now().Add(writeWait))
	}
}

func writeEvent(conn *websocket.Conn, ev *event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
