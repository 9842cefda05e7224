package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brightsite/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHubServer serves real websocket upgrades that join the hub according to
// query params, handing each joined client back on the channel.
func newHubServer(t *testing.T, hub *Hub) (*httptest.Server, chan *Client) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	clients := make(chan *Client, 8)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		q := r.URL.Query()
		var client *Client
		if q.Get("inbox") == "1" {
			client = hub.JoinInbox(conn)
		} else {
			client = hub.Join(conn, q.Get("session"), q.Get("side"))
		}
		clients <- client
		client.ReadInbound(nil)
	}))
	t.Cleanup(srv.Close)
	return srv, clients
}

func dialHub(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForRoom(t *testing.T, hub *Hub, sessionID string, size int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		got := len(hub.rooms[sessionID])
		hub.mu.RUnlock()
		if got == size {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %q never reached %d subscribers", sessionID, size)
}

func waitForInbox(t *testing.T, hub *Hub, size int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		got := len(hub.admins)
		hub.mu.RUnlock()
		if got == size {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("inbox never reached %d subscribers", size)
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

// expectSilence must be the last read on its connection: an expired read
// deadline leaves the websocket unusable.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var ev Event
	assert.Error(t, conn.ReadJSON(&ev), "expected no event, got %q", ev.Event)
}

func TestHubRoomAndInboxFanOut(t *testing.T) {
	hub := NewHub()
	srv, _ := newHubServer(t, hub)

	userConn := dialHub(t, srv, "session=s1&side=user")
	adminConn := dialHub(t, srv, "session=s1&side=admin")
	inboxConn := dialHub(t, srv, "inbox=1")
	otherConn := dialHub(t, srv, "session=s2&side=user")
	waitForRoom(t, hub, "s1", 2)
	waitForRoom(t, hub, "s2", 1)
	waitForInbox(t, hub, 1)

	hub.NotifyMessage("s1", models.ChatMessage{ID: "m1", Sender: models.ChatSenderUser, Message: "hi"})

	for _, conn := range []*websocket.Conn{userConn, adminConn, inboxConn} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventReceiveMessage, ev.Event)
		assert.Equal(t, "s1", ev.SessionID)
		require.NotNil(t, ev.Message)
		assert.Equal(t, "m1", ev.Message.ID)
	}

	// Other rooms stay quiet.
	expectSilence(t, otherConn)
}

func TestHubNotifyReadRouting(t *testing.T) {
	hub := NewHub()
	srv, _ := newHubServer(t, hub)

	userConn := dialHub(t, srv, "session=s1&side=user")
	adminConn := dialHub(t, srv, "session=s1&side=admin")
	inboxConn := dialHub(t, srv, "inbox=1")
	waitForRoom(t, hub, "s1", 2)
	waitForInbox(t, hub, 1)

	// Admin reads: only the user side hears about it.
	hub.NotifyRead("s1", models.ChatSenderAdmin, []string{"m1"})
	ev := readEvent(t, userConn)
	assert.Equal(t, EventAdminReadMessage, ev.Event)
	assert.Equal(t, []string{"m1"}, ev.MessageIDs)

	// User reads: the admin side and the inbox hear about it. The admin
	// connection receiving this first proves the admin read above was
	// filtered off the admin side.
	hub.NotifyRead("s1", models.ChatSenderUser, []string{"m1"})
	ev = readEvent(t, adminConn)
	assert.Equal(t, EventUserReadMessage, ev.Event)
	ev = readEvent(t, inboxConn)
	assert.Equal(t, EventUserReadMessage, ev.Event)

	// The reader's own side never gets its read echoed back.
	expectSilence(t, userConn)
}

func TestHubLeaveRemovesSubscription(t *testing.T) {
	hub := NewHub()
	srv, clients := newHubServer(t, hub)

	conn := dialHub(t, srv, "session=s1&side=user")
	client := <-clients
	waitForRoom(t, hub, "s1", 1)

	hub.Leave(client)
	hub.Leave(client) // leaving twice is safe
	waitForRoom(t, hub, "s1", 0)

	// Broadcasting into the now-empty room delivers nowhere and panics never.
	hub.NotifyMessage("s1", models.ChatMessage{ID: "m1"})

	// The departed client's connection is closed out by its write pump.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	assert.Error(t, conn.ReadJSON(&ev))
}

func TestHubFullSendBufferDropsEvent(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, send: make(chan Event, 1), sessionID: "s1", side: models.ChatSenderUser}
	hub.rooms["s1"] = map[*Client]struct{}{client: {}}

	// No write pump draining: the second event finds the buffer full and is
	// dropped instead of blocking the broadcaster.
	hub.NotifyMessage("s1", models.ChatMessage{ID: "m1"})
	hub.NotifyMessage("s1", models.ChatMessage{ID: "m2"})

	require.Len(t, client.send, 1)
	ev := <-client.send
	require.NotNil(t, ev.Message)
	assert.Equal(t, "m1", ev.Message.ID)
}
