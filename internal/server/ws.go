package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is a request sent by a subscriber.
type clientMessage struct {
	Type string `json:"type"` // "move"
	From string `json:"from"`
	To   string `json:"to"`
}

// subscribe upgrades to a websocket that receives the room snapshot on
// connect and after every committed move. Subscribers may also send moves.
func (s *Server) subscribe(c *gin.Context) {
	room, err := s.Room(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.cfg.Logf(1, "room %s: websocket upgrade failed: %v", room.ID, err)
		return
	}
	sub := room.subscribe(conn)
	defer room.unsubscribe(sub)
	s.cfg.Logf(2, "room %s: subscriber joined", room.ID)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.cfg.Logf(1, "room %s: websocket read failed: %v", room.ID, err)
			}
			return
		}

		switch msg.Type {
		case "move":
			_, _, err = s.perform(room, msg.From, msg.To)
		default:
			err = fmt.Errorf("unknown message type %q: %w", msg.Type, errBadRequest)
		}
		if err != nil {
			room.sendError(sub, err)
		}
	}
}
