package domain

import (
	"context"
	"time"
)

// MessageBroker defines the interface for message broker operations
type MessageBroker interface {
	// Publish sends a message to a specific topic/channel with a routing key
	Publish(ctx context.Context, topic string, routingKey string, message []byte) error

	// Subscribe listens for messages on a specific topic/channel and routing key
	Subscribe(ctx context.Context, topic string, routingKey string) (<-chan Message, error)

	// Close closes the message broker connection
	Close() error
}

// Message represents a message received from the broker
type Message struct {
	Topic      string
	RoutingKey string
	Payload    []byte
	Timestamp  time.Time
}

// ChatExchange is one completed visitor/assistant exchange, published
// after a successful relay call so live channels can mirror it.
type ChatExchange struct {
	ConversationID string    `json:"conversation_id"`
	Message        string    `json:"message"`
	Reply          string    `json:"reply"`
	Source         string    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
}
