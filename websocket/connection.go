package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"fourline/models"
)

// Connection pairs a websocket with a per-connection write lock, since
// gorilla connections do not allow concurrent writers.
type Connection struct {
	Username string
	Conn     *websocket.Conn
	writeMu  sync.Mutex
}

// ConnectionManager tracks the one live connection per user.
type ConnectionManager struct {
	connections map[int64]*Connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*Connection),
	}
}

func (cm *ConnectionManager) AddConnection(userID int64, username string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[userID] = &Connection{Username: username, Conn: conn}
}

func (cm *ConnectionManager) RemoveConnection(userID int64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.connections, userID)
}

func (cm *ConnectionManager) GetConnection(userID int64) (*websocket.Conn, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	connection, exists := cm.connections[userID]
	if !exists {
		return nil, false
	}
	return connection.Conn, true
}

// DisconnectUser closes a user's connection after telling them why,
// e.g. when they log in from another device.
func (cm *ConnectionManager) DisconnectUser(userID int64, reason string) {
	cm.mu.Lock()
	connection, exists := cm.connections[userID]
	if exists {
		delete(cm.connections, userID)
	}
	cm.mu.Unlock()

	if !exists {
		return
	}

	data, err := json.Marshal(models.ServerMessage{Type: "disconnected", Message: reason})
	if err == nil {
		connection.writeMu.Lock()
		connection.Conn.WriteMessage(websocket.TextMessage, data)
		connection.writeMu.Unlock()
	}
	connection.Conn.Close()
}

func (cm *ConnectionManager) SendMessage(userID int64, message models.ServerMessage) error {
	cm.mu.RLock()
	connection, exists := cm.connections[userID]
	cm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("no connection for user %d", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	connection.writeMu.Lock()
	defer connection.writeMu.Unlock()
	return connection.Conn.WriteMessage(websocket.TextMessage, data)
}
