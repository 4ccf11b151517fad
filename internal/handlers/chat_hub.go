package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GlobalHub is the single hub instance for the whole application.
var GlobalHub = NewHub()

type Message struct {
	Type    string             `json:"type"`
	Payload models.ChatMessage `json:"payload"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

type Hub struct {
	clients    map[uint]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Chat client connected", "user_id", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Chat client disconnected", "user_id", client.userID)

		case messageData := <-h.broadcast:
			h.handleBroadcast(messageData)
		}
	}
}

func (h *Hub) handleBroadcast(messageData []byte) {
	var msg Message
	if err := json.Unmarshal(messageData, &msg); err != nil {
		slog.Error("Failed to unmarshal broadcast message", "error", err)
		return
	}

	// Senders may only post to chats they belong to.
	var membership int64
	config.DB.Model(&models.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ?", msg.Payload.ChatID, msg.Payload.UserID).
		Count(&membership)
	if membership == 0 {
		slog.Warn("Dropped message to foreign chat", "chat_id", msg.Payload.ChatID, "user_id", msg.Payload.UserID)
		return
	}

	message := msg.Payload
	if err := config.DB.Create(&message).Error; err != nil {
		slog.Error("Failed to save chat message", "error", err)
		return
	}
	config.DB.Preload("User").First(&message, message.ID)

	h.sendMessageToChat(message)
}

// sendMessageToChat delivers a stored message to every online participant.
func (h *Hub) sendMessageToChat(message models.ChatMessage) {
	var participants []models.ChatParticipant
	config.DB.Where("chat_id = ?", message.ChatID).Find(&participants)

	finalMsg := Message{Type: "newMessage", Payload: message}
	messageBytes, err := json.Marshal(finalMsg)
	if err != nil {
		slog.Error("Failed to marshal message for broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range participants {
		if client, ok := h.clients[p.UserID]; ok {
			select {
			case client.send <- messageBytes:
			default:
				close(client.send)
				delete(h.clients, p.UserID)
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close error", "error", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			slog.Error("Error unmarshaling message from client", "error", err)
			continue
		}
		// The sender identity always comes from the session, never the payload.
		msg.Payload.UserID = c.userID

		finalMessageBytes, err := json.Marshal(msg)
		if err != nil {
			slog.Error("Error marshaling message before broadcast", "error", err)
			continue
		}
		c.hub.broadcast <- finalMessageBytes
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Failed to write message to websocket", "error", err)
			return
		}
	}
}

func ChatWSEndpoint(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	client := &Client{
		hub:    GlobalHub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
