package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHub sets up a Hub behind a test HTTP server that upgrades connections.
// Returns the hub and a dial function for clients.
func testHub(t *testing.T, maxClients int) (*Hub, func() *ws.Conn) {
	t.Helper()

	hub := NewHub(maxClients)
	t.Cleanup(hub.Stop)

	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if err := hub.Register(conn); err != nil {
			return
		}
		go func() {
			defer hub.Unregister(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}()
	}))
	t.Cleanup(server.Close)

	dial := func() *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http")
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	return hub, dial
}

func waitForClientCount(hub *Hub, expected int) bool {
	for range 100 {
		if hub.ClientCount() == expected {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestHub_PublishReachesAllClients(t *testing.T) {
	hub, dial := testHub(t, 10)

	first := dial()
	second := dial()
	require.True(t, waitForClientCount(hub, 2))

	hub.Publish(Event{Type: "sentiment", Summary: map[string]any{"texts": 3}})

	for _, conn := range []*ws.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "sentiment", event.Type)
		assert.NotEmpty(t, event.RequestID)
	}
}

func TestHub_DisconnectLowersClientCount(t *testing.T) {
	hub, dial := testHub(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(hub, 1))

	conn.Close()
	assert.True(t, waitForClientCount(hub, 0))
}

func TestHub_RejectsBeyondLimit(t *testing.T) {
	hub, dial := testHub(t, 1)

	dial()
	require.True(t, waitForClientCount(hub, 1))

	// The second connection is accepted by the HTTP layer but rejected and
	// closed by the hub.
	second := dial()
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := second.ReadMessage()
	assert.Error(t, err)
	assert.True(t, waitForClientCount(hub, 1))
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	hub, dial := testHub(t, 10)

	conn := dial()
	require.True(t, waitForClientCount(hub, 1))

	hub.Stop()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
