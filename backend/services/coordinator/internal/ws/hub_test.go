package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("SubscriberCount = %d, want %d", hub.SubscriberCount(), want)
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer server.Close()

	first := dialHub(t, server)
	second := dialHub(t, server)
	waitForSubscribers(t, hub, 2)

	hub.Broadcast("session_started", map[string]interface{}{"session_id": 42})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read broadcast: %v", err)
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("decode event %q: %v", data, err)
		}
		if event.Type != "session_started" {
			t.Fatalf("event type = %q, want session_started", event.Type)
		}
		payload, ok := event.Payload.(map[string]interface{})
		if !ok || payload["session_id"] != float64(42) {
			t.Fatalf("event payload = %v", event.Payload)
		}
		if event.Timestamp.IsZero() {
			t.Fatalf("event timestamp is zero")
		}
	}
}

func TestDisconnectRemovesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer server.Close()

	conn := dialHub(t, server)
	waitForSubscribers(t, hub, 1)

	conn.Close()
	waitForSubscribers(t, hub, 0)

	// must not panic or block with nobody listening
	hub.Broadcast("session_ended", map[string]interface{}{"session_id": 42})
}
