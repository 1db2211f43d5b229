package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeTimeout = 5 * time.Second

// client serializes writes to one websocket connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

// WSConnectionManager tracks clients subscribed to active-theme changes.
type WSConnectionManager struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
}

func NewWSConnectionManager() *WSConnectionManager {
	return &WSConnectionManager{
		clients: make(map[*websocket.Conn]*client),
	}
}

func (m *WSConnectionManager) Add(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[conn] = &client{conn: conn}
}

func (m *WSConnectionManager) Remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, conn)
}

// Count returns the number of connected clients.
func (m *WSConnectionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Broadcast sends message to every client. Clients that fail the write are
// dropped.
func (m *WSConnectionManager) Broadcast(message any) {
	m.mu.RLock()
	clients := make([]*client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.RUnlock()

	for _, c := range clients {
		if err := c.writeJSON(message); err != nil {
			log.Debug().Err(err).Str("component", "ws").Msg("dropping client")
			m.Remove(c.conn)
		}
	}
}

// WriteJSON writes to a single client, holding its write lock.
func (m *WSConnectionManager) WriteJSON(conn *websocket.Conn, message any) error {
	m.mu.RLock()
	c, ok := m.clients[conn]
	m.mu.RUnlock()
	if !ok {
		c = &client{conn: conn}
	}
	return c.writeJSON(message)
}
