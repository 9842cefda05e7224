package chat

import (
	"sync"
	"time"

	"brightsite/models"
	"brightsite/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Real-time event names pushed to subscribers.
const (
	EventReceiveMessage    = "receiveMessage"
	EventAdminReadMessage  = "adminReadMessage"
	EventUserReadMessage   = "userReadMessage"
	EventNewSessionStarted = "new-session-started"
	EventSessionEnded      = "session-ended"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// Event is the JSON frame pushed over a chat WebSocket.
type Event struct {
	Event      string              `json:"event"`
	SessionID  string              `json:"sessionId,omitempty"`
	Message    *models.ChatMessage `json:"message,omitempty"`
	MessageIDs []string            `json:"messageIds,omitempty"`
	Session    *models.ChatSession `json:"session,omitempty"`
}

// Hub multiplexes WebSocket connections into per-session rooms plus one
// admin inbox stream. It implements Notifier for the chat service.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	admins map[*Client]struct{}
}

// Client is one connected WebSocket subscriber.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan Event
	sessionID string
	side      string // "user" or "admin"
	inbox     bool   // subscribed to the admin inbox stream
	closeOnce sync.Once
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		admins: make(map[*Client]struct{}),
	}
}

// Join subscribes a connection to one session's room and starts its write
// loop. Side determines which read-receipt events the client receives.
func (h *Hub) Join(conn *websocket.Conn, sessionID, side string) *Client {
	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan Event, sendBufferSize),
		sessionID: sessionID,
		side:      side,
	}

	h.mu.Lock()
	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[sessionID] = room
	}
	room[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	return client
}

// JoinInbox subscribes an admin connection to the inbox stream: new-session
// and message events across all sessions.
func (h *Hub) JoinInbox(conn *websocket.Conn) *Client {
	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan Event, sendBufferSize),
		side:  models.ChatSenderAdmin,
		inbox: true,
	}

	h.mu.Lock()
	h.admins[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	return client
}

// Leave unsubscribes the client. Safe to call more than once; pending
// broadcasts for a departed client are simply dropped.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	if client.inbox {
		delete(h.admins, client)
	} else if room, ok := h.rooms[client.sessionID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.sessionID)
		}
	}
	h.mu.Unlock()

	client.closeOnce.Do(func() { close(client.send) })
}

// broadcast queues the event for every room client passing the filter, plus
// the inbox stream when requested. A client with a full send buffer is
// skipped rather than blocking the caller.
func (h *Hub) broadcast(sessionID string, includeInbox bool, filter func(*Client) bool, event Event) {
	logger := utils.GetLogger()

	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(client *Client) {
		select {
		case client.send <- event:
		default:
			logger.Warn("chat client send buffer full, dropping event",
				zap.String("sessionID", sessionID),
				zap.String("event", event.Event))
		}
	}

	for client := range h.rooms[sessionID] {
		if filter == nil || filter(client) {
			deliver(client)
		}
	}
	if includeInbox {
		for client := range h.admins {
			deliver(client)
		}
	}
}

// --- Notifier implementation ---

func (h *Hub) NotifyMessage(sessionID string, msg models.ChatMessage) {
	m := msg
	h.broadcast(sessionID, true, nil, Event{
		Event:     EventReceiveMessage,
		SessionID: sessionID,
		Message:   &m,
	})
}

func (h *Hub) NotifyRead(sessionID, readerSide string, messageIDs []string) {
	name := EventUserReadMessage
	if readerSide == models.ChatSenderAdmin {
		name = EventAdminReadMessage
	}
	// Only the opposite side cares that its messages were read.
	h.broadcast(sessionID, readerSide == models.ChatSenderUser, func(c *Client) bool {
		return c.side != readerSide
	}, Event{
		Event:      name,
		SessionID:  sessionID,
		MessageIDs: messageIDs,
	})
}

func (h *Hub) NotifySessionStarted(session *models.ChatSession) {
	h.broadcast("", true, nil, Event{
		Event:     EventNewSessionStarted,
		SessionID: session.ID,
		Session:   session,
	})
}

func (h *Hub) NotifySessionEnded(sessionID string) {
	h.broadcast(sessionID, true, nil, Event{
		Event:     EventSessionEnded,
		SessionID: sessionID,
	})
}

// --- Client pumps ---

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadInbound runs the connection's read loop, invoking handle for every
// inbound frame until the peer disconnects, then leaves the hub. Disconnects
// are passive: no broadcast, no cleanup beyond unsubscribing.
func (c *Client) ReadInbound(handle func(frame InboundFrame)) {
	defer c.hub.Leave(c)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame InboundFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}
		if handle != nil {
			handle(frame)
		}
	}
}

// InboundFrame is what a connected client may send over the socket.
type InboundFrame struct {
	Action    string `json:"action"` // "message" or "markRead"
	Text      string `json:"text,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}
