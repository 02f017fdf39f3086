package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lucky-seven-backend/internal/handlers"
	"lucky-seven-backend/internal/models"
)

func dialTestFeed(t *testing.T) (*handlers.WebSocketHandler, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	wsHandler := handlers.NewWebSocketHandler()

	router := gin.New()
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return wsHandler, conn
}

func TestWebSocketSubscriptionDelivery(t *testing.T) {
	wsHandler, conn := dialTestFeed(t)

	if err := conn.WriteJSON(handlers.Message{Type: "SUBSCRIBE_SESSION", SessionID: "session-1"}); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	// PONG round-trip proves the hub has processed the subscription, since
	// both travel through the hub goroutine in order.
	if err := conn.WriteJSON(handlers.Message{Type: "PING"}); err != nil {
		t.Fatalf("Failed to ping: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var reply handlers.Message
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	if reply.Type != "PONG" {
		t.Fatalf("Expected PONG, got %q", reply.Type)
	}

	wsHandler.BroadcastRollSettled("session-1", models.NewGameState())
	wsHandler.BroadcastRollSettled("other-session", models.NewGameState())
	wsHandler.BroadcastSessionCleared("session-1")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read roll event: %v", err)
	}
	if reply.Type != "ROLL_SETTLED" || reply.SessionID != "session-1" {
		t.Errorf("Expected ROLL_SETTLED for session-1, got %q for %q", reply.Type, reply.SessionID)
	}

	// The other-session event is filtered out, so the next delivery is the
	// clear for the subscribed session.
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read clear event: %v", err)
	}
	if reply.Type != "SESSION_CLEARED" || reply.SessionID != "session-1" {
		t.Errorf("Expected SESSION_CLEARED for session-1, got %q for %q", reply.Type, reply.SessionID)
	}
}

// Churning subscriptions while broadcasts are in flight exercises the hub's
// serialization of subscription state; under the race detector this fails if
// reader goroutines ever touch the maps or write to a conn directly.
func TestWebSocketSubscribeDuringBroadcast(t *testing.T) {
	wsHandler, conn := dialTestFeed(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			wsHandler.BroadcastRollSettled("session-1", models.NewGameState())
		}
	}()

	for i := 0; i < 100; i++ {
		if err := conn.WriteJSON(handlers.Message{Type: "SUBSCRIBE_SESSION", SessionID: "session-1"}); err != nil {
			t.Fatalf("Failed to subscribe: %v", err)
		}
		if err := conn.WriteJSON(handlers.Message{Type: "UNSUBSCRIBE_SESSION", SessionID: "session-1"}); err != nil {
			t.Fatalf("Failed to unsubscribe: %v", err)
		}
	}
	<-done

	// Drain whatever was delivered while subscribed, then confirm the hub
	// is still alive with a PING round-trip.
	if err := conn.WriteJSON(handlers.Message{Type: "UNSUBSCRIBE_SESSION", SessionID: "session-1"}); err != nil {
		t.Fatalf("Failed to unsubscribe: %v", err)
	}
	if err := conn.WriteJSON(handlers.Message{Type: "PING"}); err != nil {
		t.Fatalf("Failed to ping: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var reply handlers.Message
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("Hub stopped responding: %v", err)
		}
		if reply.Type == "PONG" {
			break
		}
	}
}
