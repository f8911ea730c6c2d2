package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

func newTestServer(t *testing.T) (*httptest.Server, *auth.TokenIssuer, *ConnectionManager) {
	t.Helper()
	log := zap.NewNop().Sugar()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	cm := NewConnectionManager()
	sm := game.NewSessionManager(game.Options{DefaultDepth: 1}, log)
	h := NewHandler(cm, sm, tokens, nil, log)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, tokens, cm
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg domain.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func column(c int) *int { return &c }

func TestInitRejectsBadToken(t *testing.T) {
	srv, _, cm := newTestServer(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(domain.ClientMessage{Type: "init", Token: "bogus"}); err != nil {
		t.Fatal(err)
	}
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected error, got %+v", msg)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection")
	}
	if cm.Count() != 0 {
		t.Fatalf("rejected connection was registered")
	}
}

func TestPlayAgainstComputer(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	conn := dial(t, srv)

	token, err := tokens.GenerateGuestToken(uid.GenerateGuestID())
	if err != nil {
		t.Fatal(err)
	}
	conn.WriteJSON(domain.ClientMessage{Type: "init", Token: token})
	conn.WriteJSON(domain.ClientMessage{Type: "new_game", Difficulty: "easy"})

	start := read(t, conn)
	if start.Type != "game_start" || start.Opponent != "Alice" || start.YourPlayer != int(domain.PlayerDisc) {
		t.Fatalf("unexpected game_start %+v", start)
	}
	if start.CurrentTurn == int(domain.AiDisc) {
		if opening := read(t, conn); opening.Type != "move_made" || opening.Player != int(domain.AiDisc) {
			t.Fatalf("expected computer opening, got %+v", opening)
		}
	}

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", Column: column(9)})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected error for column 9, got %+v", msg)
	}

	// no column must not default to column 0
	conn.WriteJSON(domain.ClientMessage{Type: "make_move"})
	if msg := read(t, conn); msg.Type != "error" || !strings.Contains(msg.Message, "column") {
		t.Fatalf("expected error for missing column, got %+v", msg)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", Column: column(0)})
	human := read(t, conn)
	if human.Type != "move_made" || human.Player != int(domain.PlayerDisc) || human.Column == nil || *human.Column != 0 {
		t.Fatalf("unexpected human move %+v", human)
	}
	reply := read(t, conn)
	if reply.Type != "move_made" || reply.Player != int(domain.AiDisc) {
		t.Fatalf("unexpected computer reply %+v", reply)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "resign"})
	if over := read(t, conn); over.Type != "game_over" || over.Reason != game.ReasonResign {
		t.Fatalf("unexpected game_over %+v", over)
	}
}

func TestUnknownMessageType(t *testing.T) {
	srv, tokens, _ := newTestServer(t)
	conn := dial(t, srv)

	token, _ := tokens.GenerateGuestToken(uid.GenerateGuestID())
	conn.WriteJSON(domain.ClientMessage{Type: "init", Token: token})
	conn.WriteJSON(domain.ClientMessage{Type: "find_match"})

	if msg := read(t, conn); msg.Type != "error" || !strings.Contains(msg.Message, "find_match") {
		t.Fatalf("unexpected reply %+v", msg)
	}
}

func TestInitRejectsNonGuestSubject(t *testing.T) {
	srv, tokens, cm := newTestServer(t)
	conn := dial(t, srv)

	token, _ := tokens.GenerateGuestToken("admin")
	conn.WriteJSON(domain.ClientMessage{Type: "init", Token: token})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected error, got %+v", msg)
	}
	if cm.Count() != 0 {
		t.Fatal("non-guest connection was registered")
	}
}
