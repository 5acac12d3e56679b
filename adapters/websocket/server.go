package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/fallback"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/metrics"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/usecase"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/utils/log"
)

// Server is the live-chat websocket channel. Unlike the HTTP relay, it
// owns client-side resilience: when the provider fails it answers from
// the local intent matcher instead of surfacing an error.
type Server struct {
	upgrader websocket.Upgrader
	relay    *usecase.RelayService
	matcher  *fallback.Matcher
	broker   domain.MessageBroker
	hub      *Hub
}

func NewServer(relay *usecase.RelayService, matcher *fallback.Matcher, broker domain.MessageBroker) *Server {
	hub := NewHub()

	server := &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		relay:    relay,
		matcher:  matcher,
		broker:   broker,
		hub:      hub,
	}

	// Mirror relay exchanges to clients watching the same conversation.
	go server.startExchangeListener()

	return server
}

func (s *Server) RunWebsocketHub() {
	s.hub.Run()
}

func (s *Server) GetHub() *Hub {
	return s.hub
}

type inboundMessage struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	History []domain.ChatTurn `json:"history"`
}

type outboundMessage struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

type exchangeMessage struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
	Reply          string `json:"reply"`
	Source         string `json:"source"`
}

// handleInbound answers one chat frame on the client's own connection.
func (s *Server) handleInbound(client *Client, raw []byte) {
	ctx := client.Context()

	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		s.send(client, outboundMessage{Type: "error", Text: "Invalid message"})
		return
	}
	if in.Type != "chat" {
		log.WithCtx(ctx).Debug("Ignoring frame", zap.String("type", in.Type))
		return
	}

	reply, err := s.relay.Reply(ctx, domain.ChatRequest{
		ConversationID: client.ConversationID(),
		Message:        in.Message,
		History:        in.History,
	})
	source := "assistant"
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			s.send(client, outboundMessage{Type: "error", Text: "Message is required"})
			return
		}

		// Degraded mode: the provider is unreachable or misconfigured, so
		// answer from the local table like the browser widget would.
		reply = s.matcher.Match(in.Message)
		source = "fallback"
		metrics.FallbackMatches.Inc()
		log.WithCtx(ctx).Warn("Provider unavailable, answered locally", zap.Error(err))
	}

	s.send(client, outboundMessage{Type: "reply", Text: reply, Source: source})
}

func (s *Server) send(client *Client, out outboundMessage) {
	payload, err := json.Marshal(out)
	if err != nil {
		log.WithCtx(client.Context()).Error("Failed to marshal outbound message", zap.Error(err))
		return
	}
	client.SendMessage(payload)
}

// startExchangeListener forwards relay exchanges from the broker into the
// hub so a conversation open in several tabs stays in sync.
func (s *Server) startExchangeListener() {
	ctx := context.Background()

	messageChan, err := s.broker.Subscribe(ctx, usecase.ExchangeTopic, "")
	if err != nil {
		log.WithCtx(ctx).Error("Failed to subscribe to exchange topic", zap.Error(err))
		return
	}

	log.WithCtx(ctx).Info("Live-chat server listening for relay exchanges")

	for {
		select {
		case msg, ok := <-messageChan:
			if !ok {
				return
			}

			var exchange domain.ChatExchange
			if err := json.Unmarshal(msg.Payload, &exchange); err != nil {
				log.WithCtx(ctx).Error("Failed to unmarshal chat exchange", zap.Error(err))
				continue
			}

			payload, err := json.Marshal(exchangeMessage{
				Type:           "exchange",
				ConversationID: exchange.ConversationID,
				Message:        exchange.Message,
				Reply:          exchange.Reply,
				Source:         exchange.Source,
			})
			if err != nil {
				log.WithCtx(ctx).Error("Failed to marshal exchange mirror", zap.Error(err))
				continue
			}

			s.hub.Deliver(exchange.ConversationID, payload)

		case <-ctx.Done():
			log.WithCtx(ctx).Info("Exchange listener stopped")
			return
		}
	}
}
