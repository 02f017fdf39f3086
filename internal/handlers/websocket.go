package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lucky-seven-backend/internal/middleware"
	"lucky-seven-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams roll and session lifecycle events to connected
// clients. Clients subscribe to individual session IDs; lifecycle events for
// unsubscribed sessions are not delivered.
type WebSocketHandler struct {
	hub *WebSocketHub
}

// WebSocketHub serializes all client state. The hub goroutine is the only
// one that touches subscription maps or writes to a connection; reader
// goroutines funnel every mutation and reply through its channels.
type WebSocketHub struct {
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	subscribe   chan *subscription
	unsubscribe chan *subscription
	send        chan *directMessage
	broadcast   chan *Message
}

type Client struct {
	Username      string
	Conn          *websocket.Conn
	subscriptions map[string]bool // owned by the hub goroutine
}

type subscription struct {
	client    *Client
	sessionID string
}

type directMessage struct {
	client  *Client
	message *Message
}

type Message struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func NewWebSocketHandler() *WebSocketHandler {
	hub := &WebSocketHub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *subscription),
		unsubscribe: make(chan *subscription),
		send:        make(chan *directMessage, 100),
		broadcast:   make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		Username:      username,
		Conn:          conn,
		subscriptions: make(map[string]bool),
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.hub.send <- &directMessage{
			client: client,
			message: &Message{
				Type: "PONG",
				Data: gin.H{"timestamp": time.Now().Unix()},
			},
		}
	case "SUBSCRIBE_SESSION":
		if msg.SessionID != "" {
			h.hub.subscribe <- &subscription{client: client, sessionID: msg.SessionID}
		}
	case "UNSUBSCRIBE_SESSION":
		h.hub.unsubscribe <- &subscription{client: client, sessionID: msg.SessionID}
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client] = true
			log.Printf("WebSocket client registered: %s", client.Username)

		case client := <-hub.unregister:
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				log.Printf("WebSocket client unregistered: %s", client.Username)
			}

		case sub := <-hub.subscribe:
			if hub.clients[sub.client] {
				sub.client.subscriptions[sub.sessionID] = true
			}

		case sub := <-hub.unsubscribe:
			if hub.clients[sub.client] {
				delete(sub.client.subscriptions, sub.sessionID)
			}

		case dm := <-hub.send:
			if hub.clients[dm.client] {
				dm.client.Conn.WriteJSON(dm.message)
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	for client := range hub.clients {
		if message.SessionID != "" && !client.subscriptions[message.SessionID] {
			continue
		}
		client.Conn.WriteJSON(message)
	}
}

// BroadcastRollSettled implements services.Broadcaster.
func (h *WebSocketHandler) BroadcastRollSettled(sessionID string, state models.GameState) {
	h.hub.broadcast <- &Message{
		Type:      "ROLL_SETTLED",
		SessionID: sessionID,
		Data: gin.H{
			"gameState": state,
			"timestamp": time.Now().Unix(),
		},
	}
}

// BroadcastSessionCleared implements services.Broadcaster.
func (h *WebSocketHandler) BroadcastSessionCleared(sessionID string) {
	h.hub.broadcast <- &Message{
		Type:      "SESSION_CLEARED",
		SessionID: sessionID,
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}
}
