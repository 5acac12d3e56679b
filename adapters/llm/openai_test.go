package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
)

type openaiWireRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type openaiStub struct {
	server   *httptest.Server
	calls    atomic.Int64
	lastBody atomic.Value // []byte
}

func newOpenAIStub(t *testing.T, status int, payload string) *openaiStub {
	t.Helper()
	stub := &openaiStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.lastBody.Store(body)
		stub.calls.Add(1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, payload)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *openaiStub) captured(t *testing.T) openaiWireRequest {
	t.Helper()
	raw, ok := s.lastBody.Load().([]byte)
	require.True(t, ok, "no outbound request captured")
	var req openaiWireRequest
	require.NoError(t, json.Unmarshal(raw, &req))
	return req
}

func newTestOpenAI(baseURL string) *OpenAI {
	return NewOpenAI(testPersona, OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

const chatCompletionReply = `{
	"id": "chatcmpl-test",
	"object": "chat.completion",
	"created": 1234567890,
	"model": "gpt-4o-mini",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": "hey there"}, "finish_reason": "stop"}
	],
	"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
}`

func TestOpenAIGenerate_Success(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusOK, chatCompletionReply)
	o := newTestOpenAI(stub.server.URL)

	reply, err := o.Generate(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hey there", reply)
	assert.Equal(t, int64(1), stub.calls.Load())
}

func TestOpenAIGenerate_PersonaLeadsAsSystemMessage(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusOK, chatCompletionReply)
	o := newTestOpenAI(stub.server.URL)

	_, err := o.Generate(context.Background(), []domain.ChatTurn{
		{Role: domain.UserRole, Text: "earlier"},
	}, "now")
	require.NoError(t, err)

	req := stub.captured(t)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, testPersona, req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "now", req.Messages[2].Content)
}

func TestOpenAIGenerate_TruncatesHistoryToLastEight(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusOK, chatCompletionReply)
	o := newTestOpenAI(stub.server.URL)

	history := make([]domain.ChatTurn, 12)
	for i := range history {
		history[i] = domain.ChatTurn{Role: domain.UserRole, Text: "turn-" + string(rune('a'+i))}
	}

	_, err := o.Generate(context.Background(), history, "latest")
	require.NoError(t, err)

	req := stub.captured(t)
	// system + 8 kept turns + new message.
	require.Len(t, req.Messages, 10)
	assert.Equal(t, "turn-"+string(rune('a'+4)), req.Messages[1].Content)
	assert.Equal(t, "latest", req.Messages[9].Content)
}

func TestOpenAIGenerate_RoleMapping(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusOK, chatCompletionReply)
	o := newTestOpenAI(stub.server.URL)

	history := []domain.ChatTurn{
		{Role: domain.AssistantRole, Text: "answer"},
		{Role: domain.Role("weird"), Text: "unknown"},
	}

	_, err := o.Generate(context.Background(), history, "next")
	require.NoError(t, err)

	req := stub.captured(t)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, "assistant", req.Messages[1].Role)
	assert.Equal(t, "user", req.Messages[2].Role)
}

func TestOpenAIGenerate_UpstreamError(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)
	o := newTestOpenAI(stub.server.URL)

	_, err := o.Generate(context.Background(), nil, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestOpenAIGenerate_EmptyChoicesSubstitutesFallback(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusOK, `{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`)
	o := newTestOpenAI(stub.server.URL)

	reply, err := o.Generate(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, emptyReplyFallback, reply)
}

func TestOpenAIGenerate_MissingKeyMakesNoCall(t *testing.T) {
	stub := newOpenAIStub(t, http.StatusOK, chatCompletionReply)
	o := NewOpenAI(testPersona, OpenAIConfig{BaseURL: stub.server.URL})

	_, err := o.Generate(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Equal(t, int64(0), stub.calls.Load())
}
