package websocket

import (
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/metrics"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/utils/log"
)

// Hub tracks connected live-chat clients and routes exchange mirrors to
// the clients watching the same conversation.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
}

type delivery struct {
	conversationID string
	payload        []byte
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 64),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.ActiveWebsockets.Inc()
			log.WithCtx(client.ctx).Debug("New client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				metrics.ActiveWebsockets.Dec()
				log.WithCtx(client.ctx).Debug("Client unregistered")
			}

		case d := <-h.deliver:
			for client := range h.clients {
				if d.conversationID != "" && client.ConversationID() != d.conversationID {
					continue
				}
				// Best effort: a saturated client gets closed, not waited on.
				client.SendMessage(d.payload)
			}
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Deliver routes a payload to every client on the given conversation. An
// empty conversation ID addresses all clients.
func (h *Hub) Deliver(conversationID string, payload []byte) {
	h.deliver <- delivery{conversationID: conversationID, payload: payload}
}
