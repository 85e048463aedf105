// Package live pushes order and menu events to connected kitchen and
// delivery dashboards over WebSocket.
package live

import (
	"encoding/json"
	"log"
	"time"
)

// Event is a single dashboard update
type Event struct {
	Type    string      `json:"type"` // order_placed, order_status, menu_published, guest_code_rotated
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Hub fans events out to every connected client
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub creates an empty hub; call Run in a goroutine to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run processes registrations and broadcasts until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer: drop it rather than block the hub
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Publish broadcasts an event to every connected dashboard. Events to a
// full hub queue are dropped; the feed is advisory, not durable.
func (h *Hub) Publish(eventType string, payload interface{}) {
	event := Event{Type: eventType, Payload: payload, At: time.Now()}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("live: marshal %s event: %v", eventType, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("live: broadcast buffer full, dropping %s event", eventType)
	}
}
