package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func dialTestClient(t *testing.T, hub *Hub, userID int64) (*websocket.Conn, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(&Client{UserID: userID, Conn: conn})
	}))

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	// 等待 Register 完成
	deadline := time.Now().Add(time.Second)
	for !hub.IsOnline(userID) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cleanup := func() {
		conn.Close()
		server.Close()
	}
	return conn, cleanup
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.False(t, hub.IsOnline(123))
}

func TestHub_SendToUser_UserNotOnline(t *testing.T) {
	hub := NewHub()

	msg := &Message{Type: "order_paid", Data: map[string]interface{}{"order_id": 42}}
	err := hub.SendToUser(999, msg)

	assert.NoError(t, err)
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestClient(t, hub, 7)
	defer cleanup()

	require.True(t, hub.IsOnline(7))

	err := hub.SendToUser(7, &Message{Type: "order_paid", Data: map[string]interface{}{"order_id": float64(42)}})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "order_paid")
	assert.Contains(t, string(data), "42")
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	conn1, cleanup1 := dialTestClient(t, hub, 1)
	defer cleanup1()
	conn2, cleanup2 := dialTestClient(t, hub, 2)
	defer cleanup2()

	require.Equal(t, 2, hub.ConnectionCount())

	err := hub.Broadcast(&Message{Type: "order_paid"})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(data), "order_paid")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	client := &Client{UserID: 5}
	hub.Register(client)
	require.True(t, hub.IsOnline(5))

	hub.Unregister(client)
	assert.False(t, hub.IsOnline(5))
	assert.Equal(t, 0, hub.ConnectionCount())
}
