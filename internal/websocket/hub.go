package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and pushes inventory change
// events to the clients watching each owner's inventory.
type Hub struct {
	// mu guards clients and subscriptions. BroadcastTo is called from
	// request goroutines while Run mutates the same maps.
	mu sync.Mutex

	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of owner usernames to the set of clients subscribed to them.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			if client.Owner != "" {
				h.addSubscription(client, client.Owner)
			}
			h.mu.Unlock()
			log.Info().Int("total_clients", total).Msg("Client connected")
		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				total := len(h.clients)
				h.mu.Unlock()
				log.Info().Int("total_clients", total).Msg("Client disconnected")
				continue
			}
			h.mu.Unlock()
		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastTo sends a message to all clients watching a specific owner.
// Clients whose send buffer is full are dropped.
func (h *Hub) BroadcastTo(owner string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subscriptions[owner]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[owner], client)
			}
		}
	}
}

// addSubscription and removeSubscription expect h.mu to be held.
func (h *Hub) addSubscription(client *Client, owner string) {
	if h.subscriptions[owner] == nil {
		h.subscriptions[owner] = make(map[*Client]bool)
	}
	h.subscriptions[owner][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for owner, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, owner)
			}
		}
	}
}
