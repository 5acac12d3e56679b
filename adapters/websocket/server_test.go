package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/hasher"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/message_broker"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/fallback"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/usecase"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, history []domain.ChatTurn, message string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestWsServer(gen domain.Generator) (*Server, *message_broker.ChannelMessageBroker) {
	broker := message_broker.NewChannelMessageBroker()
	relay := usecase.NewRelayService(gen, broker, hasher.New(), "test")
	server := NewServer(relay, fallback.NewDefault(), broker)
	server.RunWebsocketHub()
	return server, broker
}

func receive(t *testing.T, client *Client) outboundMessage {
	t.Helper()
	select {
	case raw := <-client.send:
		var out outboundMessage
		require.NoError(t, json.Unmarshal(raw, &out))
		return out
	case <-time.After(time.Second):
		t.Fatal("no frame delivered to client")
		return outboundMessage{}
	}
}

func TestHandleInbound_ReliesOnProvider(t *testing.T) {
	server, broker := newTestWsServer(&stubGenerator{reply: "from the model"})
	defer broker.Close()

	client := NewClient(nil, "conv-1", "visitor-1")
	server.handleInbound(client, []byte(`{"type":"chat","message":"hi"}`))

	out := receive(t, client)
	assert.Equal(t, "reply", out.Type)
	assert.Equal(t, "from the model", out.Text)
	assert.Equal(t, "assistant", out.Source)
}

func TestHandleInbound_DegradesToLocalMatcher(t *testing.T) {
	server, broker := newTestWsServer(&stubGenerator{err: domain.ErrUpstream})
	defer broker.Close()

	client := NewClient(nil, "conv-1", "visitor-1")
	server.handleInbound(client, []byte(`{"type":"chat","message":"tell me about your hackathon"}`))

	out := receive(t, client)
	assert.Equal(t, "reply", out.Type)
	assert.Equal(t, "fallback", out.Source)
	assert.Contains(t, out.Text, "Top 30")
}

func TestHandleInbound_BlankMessageIsAnError(t *testing.T) {
	server, broker := newTestWsServer(&stubGenerator{reply: "unused"})
	defer broker.Close()

	client := NewClient(nil, "conv-1", "visitor-1")
	server.handleInbound(client, []byte(`{"type":"chat","message":"   "}`))

	out := receive(t, client)
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, "Message is required", out.Text)
}

func TestHandleInbound_MalformedFrame(t *testing.T) {
	server, broker := newTestWsServer(&stubGenerator{reply: "unused"})
	defer broker.Close()

	client := NewClient(nil, "conv-1", "visitor-1")
	server.handleInbound(client, []byte(`not-json`))

	out := receive(t, client)
	assert.Equal(t, "error", out.Type)
}

func TestHubDeliver_ScopesByConversation(t *testing.T) {
	hub := NewHub()
	hub.Run()

	mine := NewClient(nil, "conv-1", "visitor-1")
	other := NewClient(nil, "conv-2", "visitor-2")
	hub.Register(mine)
	hub.Register(other)

	hub.Deliver("conv-1", []byte("payload"))

	select {
	case raw := <-mine.send:
		assert.Equal(t, []byte("payload"), raw)
	case <-time.After(time.Second):
		t.Fatal("targeted client got nothing")
	}

	select {
	case <-other.send:
		t.Fatal("payload leaked to another conversation")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExchangeListener_MirrorsRelayExchanges(t *testing.T) {
	server, broker := newTestWsServer(&stubGenerator{reply: "pong"})
	defer broker.Close()

	client := NewClient(nil, "conv-1", "visitor-1")
	server.GetHub().Register(client)

	relay := usecase.NewRelayService(&stubGenerator{reply: "pong"}, broker, hasher.New(), "test")
	_, err := relay.Reply(context.Background(), domain.ChatRequest{
		ConversationID: "conv-1",
		Message:        "ping",
	})
	require.NoError(t, err)

	select {
	case raw := <-client.send:
		var mirror exchangeMessage
		require.NoError(t, json.Unmarshal(raw, &mirror))
		assert.Equal(t, "exchange", mirror.Type)
		assert.Equal(t, "conv-1", mirror.ConversationID)
		assert.Equal(t, "ping", mirror.Message)
		assert.Equal(t, "pong", mirror.Reply)
	case <-time.After(2 * time.Second):
		t.Fatal("exchange not mirrored to client")
	}
}
