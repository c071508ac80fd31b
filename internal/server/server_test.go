package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/output"
	"github.com/lgbarn/chessmatch-go/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(maxRooms int) *Server {
	cfg := config.NewConfigBuilder().
		WithVerbosity(0).
		WithLog(io.Discard).
		WithMaxRooms(maxRooms).
		Build()
	return New(cfg)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

func mustCreateRoom(t *testing.T, s *Server, body string) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/rooms", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /rooms = %d %s", rec.Code, rec.Body.String())
	}
	return decode[createRoomResponse](t, rec).ID
}

func TestCreateRoom(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantFEN string
	}{
		{"empty body uses default layout", "", "2rkr3/2rrr3/8/8/8/8/2RRR3/2RKR3 w - - 0 1"},
		{"standard layout", `{"layout": "standard"}`, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"fen", `{"fen": "4k3/8/8/8/8/8/8/R3K3 b - - 0 3"}`, "4k3/8/8/8/8/8/8/R3K3 b - - 0 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(4)
			rec := do(t, s, http.MethodPost, "/rooms", tt.body)

			testutil.AssertEqual(t, rec.Code, http.StatusCreated)
			resp := decode[createRoomResponse](t, rec)
			testutil.AssertTrue(t, resp.ID != "", "room id should be set")
			testutil.AssertEqual(t, resp.Snapshot.FEN, tt.wantFEN)

			room, err := s.Room(resp.ID)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, room.ID, resp.ID)
		})
	}
}

func TestCreateRoom_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"layout":`},
		{"unknown layout", `{"layout": "fischer"}`},
		{"invalid fen", `{"fen": "8/8/8 w"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(4), http.MethodPost, "/rooms", tt.body)
			testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
			testutil.AssertContains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCreateRoom_Limit(t *testing.T) {
	s := newTestServer(2)
	mustCreateRoom(t, s, "")
	mustCreateRoom(t, s, "")

	rec := do(t, s, http.MethodPost, "/rooms", "")
	testutil.AssertEqual(t, rec.Code, http.StatusServiceUnavailable)
}

func TestGetRoom(t *testing.T) {
	s := newTestServer(4)
	id := mustCreateRoom(t, s, "")

	rec := do(t, s, http.MethodGet, "/rooms/"+id, "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	snap := decode[output.Snapshot](t, rec)
	testutil.AssertEqual(t, snap.Turn, 1)
	testutil.AssertEqual(t, snap.CurrentPlayer, "White")

	rec = do(t, s, http.MethodGet, "/rooms/no-such-room", "")
	testutil.AssertEqual(t, rec.Code, http.StatusNotFound)
}

func TestGetMoves(t *testing.T) {
	s := newTestServer(4)
	id := mustCreateRoom(t, s, `{"fen": "k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1"}`)

	rec := do(t, s, http.MethodGet, "/rooms/"+id+"/moves?from=e2", "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	got := decode[movesResponse](t, rec)
	want := movesResponse{
		From:     "e2",
		Possible: []string{"e8", "e7", "e6", "e5", "e4", "e3", "a2", "b2", "c2", "d2", "f2", "g2", "h2"},
		Legal:    []string{"e8", "e7", "e6", "e5", "e4", "e3"},
	}
	testutil.AssertEqual(t, got, want)

	t.Run("errors", func(t *testing.T) {
		testutil.AssertEqual(t, do(t, s, http.MethodGet, "/rooms/"+id+"/moves?from=z9", "").Code, http.StatusBadRequest)
		testutil.AssertEqual(t, do(t, s, http.MethodGet, "/rooms/"+id+"/moves", "").Code, http.StatusBadRequest)
		testutil.AssertEqual(t, do(t, s, http.MethodGet, "/rooms/"+id+"/moves?from=a8", "").Code, http.StatusUnprocessableEntity)
		testutil.AssertEqual(t, do(t, s, http.MethodGet, "/rooms/nope/moves?from=e2", "").Code, http.StatusNotFound)
	})
}

func TestPostMove(t *testing.T) {
	s := newTestServer(4)
	id := mustCreateRoom(t, s, "")

	rec := do(t, s, http.MethodPost, "/rooms/"+id+"/moves", `{"from": "c2", "to": "c7"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	resp := decode[moveResponse](t, rec)
	testutil.AssertNotNil(t, resp.Captured)
	testutil.AssertEqual(t, *resp.Captured, "r")
	testutil.AssertEqual(t, resp.Snapshot.History, []string{"Rc2xc7"})
	testutil.AssertEqual(t, resp.Snapshot.CurrentPlayer, "Black")

	rec = do(t, s, http.MethodPost, "/rooms/"+id+"/moves", `{"from": "c8", "to": "b8"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertContains(t, rec.Body.String(), `"captured":null`)
}

func TestPostMove_Errors(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		body       string
		wantStatus int
		wantReason string
	}{
		{"wrong turn", "", `{"from": "c7", "to": "c6"}`, http.StatusUnprocessableEntity, "the chosen piece is not yours"},
		{"empty source", "", `{"from": "e4", "to": "e5"}`, http.StatusUnprocessableEntity, "there is no piece on source position"},
		{"self check", "k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1", `{"from": "e2", "to": "d2"}`, http.StatusUnprocessableEntity, "you cannot put yourself in check"},
		{"missing field", "", `{"from": "c2"}`, http.StatusBadRequest, ""},
		{"bad square", "", `{"from": "c2", "to": "c9"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(4)
			body := ""
			if tt.fen != "" {
				body = `{"fen": "` + tt.fen + `"}`
			}
			id := mustCreateRoom(t, s, body)
			room, err := s.Room(id)
			testutil.AssertNoError(t, err)
			before := room.Snapshot()

			rec := do(t, s, http.MethodPost, "/rooms/"+id+"/moves", tt.body)

			testutil.AssertEqual(t, rec.Code, tt.wantStatus)
			resp := decode[map[string]string](t, rec)
			testutil.AssertEqual(t, resp["reason"], tt.wantReason)
			testutil.AssertEqual(t, room.Snapshot(), before, "rejected move must not change the match")
		})
	}
}

func dialRoom(t *testing.T, ts *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/rooms/" + id + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("reading event: %v", err)
	}
	return ev
}

func TestWebsocket_Subscription(t *testing.T) {
	s := newTestServer(4)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	id := mustCreateRoom(t, s, "")

	white := dialRoom(t, ts, id)
	black := dialRoom(t, ts, id)

	for _, conn := range []*websocket.Conn{white, black} {
		ev := readEvent(t, conn)
		testutil.AssertEqual(t, ev.Type, "snapshot")
		testutil.AssertEqual(t, ev.Snapshot.Turn, 1)
	}

	// A move over HTTP reaches every subscriber.
	rec := do(t, s, http.MethodPost, "/rooms/"+id+"/moves", `{"from": "e2", "to": "h2"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	for _, conn := range []*websocket.Conn{white, black} {
		ev := readEvent(t, conn)
		testutil.AssertEqual(t, ev.Snapshot.History, []string{"Re2h2"})
	}

	// A move over the websocket is broadcast as well.
	testutil.AssertNoError(t, black.WriteJSON(clientMessage{Type: "move", From: "e7", To: "h7"}))
	for _, conn := range []*websocket.Conn{white, black} {
		ev := readEvent(t, conn)
		testutil.AssertEqual(t, ev.Snapshot.History, []string{"Re2h2", "Re7h7"})
	}

	// Rejections go only to the sender.
	testutil.AssertNoError(t, black.WriteJSON(clientMessage{Type: "move", From: "c7", To: "c6"}))
	ev := readEvent(t, black)
	testutil.AssertEqual(t, ev.Type, "error")
	testutil.AssertEqual(t, ev.Reason, "the chosen piece is not yours")

	testutil.AssertNoError(t, white.WriteJSON(clientMessage{Type: "resign"}))
	ev = readEvent(t, white)
	testutil.AssertEqual(t, ev.Type, "error")
	testutil.AssertContains(t, ev.Error, "unknown message type")

	room, err := s.Room(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, room.Subscribers(), 2)
}

func TestWebsocket_UnknownRoom(t *testing.T) {
	s := newTestServer(4)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/rooms/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	testutil.AssertError(t, err)
	testutil.AssertNotNil(t, resp)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)
}

func TestRun_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	var logs bytes.Buffer
	cfg := config.NewConfigBuilder().WithAddr(addr).WithLog(&logs).Build()
	s := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Post("http://"+addr+"/rooms", "application/json", nil)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)

	cancel()
	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	testutil.AssertContains(t, logs.String(), "listening on "+addr)
	testutil.AssertContains(t, logs.String(), "server stopped")
}
