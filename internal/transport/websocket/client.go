package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use, and bot moves are
	// written from timer goroutines.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a connection for the guest, closing any older one.
func (cm *ConnectionManager) AddConnection(guestID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[guestID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[guestID] = conn
	cm.writeMu[guestID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching removes the guest's connection only if it is
// still conn, so a stale reader cannot drop a newer socket.
func (cm *ConnectionManager) RemoveConnectionIfMatching(guestID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[guestID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, guestID)
		delete(cm.writeMu, guestID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes a JSON message to the guest. A guest without a
// connection is ignored.
func (cm *ConnectionManager) SendMessage(guestID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[guestID]
	mu, muExists := cm.writeMu[guestID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// ping sends a keep-alive ping under the guest's write lock.
func (cm *ConnectionManager) ping(guestID string, conn *websocket.Conn) error {
	cm.mu.RLock()
	mu, exists := cm.writeMu[guestID]
	current := cm.connections[guestID]
	cm.mu.RUnlock()

	if !exists || current != conn {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
