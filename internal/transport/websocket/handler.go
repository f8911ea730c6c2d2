package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Tokens         *auth.TokenIssuer
	Upgrader       websocket.Upgrader
	log            *zap.SugaredLogger
}

// NewHandler builds the handler. An empty allowedOrigins accepts any origin.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, tokens *auth.TokenIssuer, allowedOrigins []string, log *zap.SugaredLogger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Tokens:         tokens,
		log:            log,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	guestID, ok := h.authenticate(conn)
	if !ok {
		conn.Close()
		return
	}

	h.ConnManager.AddConnection(guestID, conn)
	h.log.Infow("websocket connected", "guest_id", guestID, "connections", h.ConnManager.Count())

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnectionIfMatching(guestID, conn)
		h.log.Infow("websocket closed", "guest_id", guestID)
	}()

	go h.keepAlive(guestID, conn, done)

	// a reconnecting guest gets their game back
	if view, exists := h.SessionManager.View(guestID); exists {
		board := view.State.Board
		h.ConnManager.SendMessage(guestID, domain.ServerMessage{
			Type:        "game_start",
			GameID:      view.GameID,
			Opponent:    view.Opponent,
			YourPlayer:  int(domain.PlayerDisc),
			CurrentTurn: int(view.State.Turn),
			Board:       &board,
			Status:      view.State.Status,
		})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Infow("guest disconnected unexpectedly", "guest_id", guestID, "error", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(guestID, "invalid message format")
			continue
		}

		h.processMessage(guestID, msg)
	}
}

// authenticate waits for the init message and validates its guest token.
func (h *Handler) authenticate(conn *websocket.Conn) (string, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		h.log.Debugw("read error during init", "error", err)
		return "", false
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.Token == "" {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "expected init message with token"})
		return "", false
	}

	claims, err := h.Tokens.ValidateGuestToken(message.Token)
	if err == nil && !uid.IsGuestID(claims.GuestID) {
		err = fmt.Errorf("token subject %q is not a guest id", claims.GuestID)
	}
	if err != nil {
		h.log.Infow("invalid token during init", "error", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "invalid or expired token"})
		return "", false
	}
	return claims.GuestID, true
}

func (h *Handler) keepAlive(guestID string, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.ping(guestID, conn); err != nil {
				return
			}
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(guestID string, msg domain.ClientMessage) {
	var err error
	switch msg.Type {
	case "new_game":
		h.SessionManager.StartGame(guestID, msg.Difficulty, h.ConnManager)

	case "make_move":
		if msg.Column == nil {
			h.sendError(guestID, "make_move requires a column")
			return
		}
		err = h.SessionManager.HandleMove(guestID, *msg.Column, h.ConnManager)

	case "resign":
		err = h.SessionManager.Resign(guestID, h.ConnManager)

	default:
		h.sendError(guestID, "unknown message type: "+msg.Type)
		return
	}

	if err != nil {
		h.log.Debugw("message rejected", "guest_id", guestID, "type", msg.Type, "error", err)
		h.sendError(guestID, err.Error())
	}
}

func (h *Handler) sendError(guestID, message string) {
	h.ConnManager.SendMessage(guestID, domain.ServerMessage{Type: "error", Message: message})
}
