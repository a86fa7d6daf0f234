package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose
// origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host != r.Host {
		slog.Warn("websocket: rejected origin", "origin", origin)
		return false
	}
	return true
}

// Message types pushed to clients.
const (
	MsgStations       = "stations"
	MsgStationUpdated = "station.updated"
	MsgStationRemoved = "station.removed"
)

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StationLister supplies the initial station list sent on connect.
type StationLister interface {
	Stations() []domain.StationSnapshot
}

// WSManager streams station events to websocket clients. It implements
// ports.StationEventSink; events are queued and never block the caller.
type WSManager struct {
	lister  StationLister
	events  chan WSMessage
	clients map[*websocket.Conn]struct{}
	mu      sync.Mutex
}

func NewWSManager(lister StationLister, bufferSize int) *WSManager {
	return &WSManager{
		lister:  lister,
		events:  make(chan WSMessage, bufferSize),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// SetLister replaces the initial station list source. Call before Start.
func (m *WSManager) SetLister(lister StationLister) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lister = lister
}

func (m *WSManager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				m.closeAll()
				return
			case msg := <-m.events:
				m.broadcastMessage(msg)
			}
		}
	}()
}

func (m *WSManager) StationUpdated(snap domain.StationSnapshot) {
	m.enqueue(WSMessage{Type: MsgStationUpdated, Payload: snap})
}

func (m *WSManager) StationRemoved(addr string) {
	m.enqueue(WSMessage{Type: MsgStationRemoved, Payload: map[string]string{"addr": addr}})
}

func (m *WSManager) enqueue(msg WSMessage) {
	select {
	case m.events <- msg:
	default:
		slog.Warn("websocket: event queue full, dropping", "type", msg.Type)
	}
}

// ClientCount returns the number of connected clients.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket: upgrade failed", "error", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = struct{}{}
	if m.lister != nil {
		m.writeLocked(conn, WSMessage{Type: MsgStations, Payload: m.lister.Stations()})
	}
	m.mu.Unlock()

	slog.Debug("websocket: client connected", "remote", r.RemoteAddr)

	go func() {
		defer m.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (m *WSManager) remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[conn]; ok {
		delete(m.clients, conn)
		conn.Close()
	}
}

func (m *WSManager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		conn.Close()
		delete(m.clients, conn)
	}
}

func (m *WSManager) broadcastMessage(msg WSMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		m.writeLocked(conn, msg)
	}
}

// writeLocked sends msg to conn, dropping the client on error. m.mu must be held.
func (m *WSManager) writeLocked(conn *websocket.Conn, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket: marshal failed", "type", msg.Type, "error", err)
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		conn.Close()
		delete(m.clients, conn)
	}
}
