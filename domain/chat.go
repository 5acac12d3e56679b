package domain

import (
	"context"
	"errors"
)

// Role identifies the author of a chat turn as it appears on the wire.
type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "ai"
)

// ChatTurn is one message of a prior exchange. Ordering is chronological
// and significant; turns are immutable once created.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is a single relay invocation: the new visitor message plus
// the client-held history. Consumed once, never persisted.
type ChatRequest struct {
	ConversationID string
	Message        string
	History        []ChatTurn
}

// Generator abstracts a text-generation provider. Implementations own
// their own wire translation: role vocabulary, persona slot, and history
// cap. The persona is fixed at construction.
type Generator interface {
	Generate(ctx context.Context, history []ChatTurn, message string) (string, error)
}

var (
	// ErrEmptyMessage rejects a blank message before any network call.
	ErrEmptyMessage = errors.New("message is required")

	// ErrNotConfigured signals a missing provider credential.
	ErrNotConfigured = errors.New("api key not configured")

	// ErrUpstream covers provider non-2xx responses, timeouts, and any
	// other transport failure on the single outbound call.
	ErrUpstream = errors.New("upstream generation failed")
)
