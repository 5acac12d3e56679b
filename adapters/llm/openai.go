package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/utils/log"
)

// OpenAI-compatible endpoints get a tighter history window than Gemini.
const openaiHistoryLimit = 8

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIConfig carries the provider settings fixed at construction.
// BaseURL enables OpenRouter, Ollama, or any other compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAI is the alternative provider, selected with LLM_PROVIDER=openai.
type OpenAI struct {
	client  openai.Client
	model   string
	persona string
	apiKey  string
}

// NewOpenAI builds the provider with an immutable persona.
func NewOpenAI(persona string, cfg OpenAIConfig) *OpenAI {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	// One attempt per request; the caller owns resilience.
	opts := []option.RequestOption{
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		client:  openai.NewClient(opts...),
		model:   model,
		persona: persona,
		apiKey:  cfg.APIKey,
	}
}

// Generate relays one message plus truncated history. This provider has no
// dedicated system slot on the turn list itself, so the persona leads the
// message array as a system message.
func (o *OpenAI) Generate(ctx context.Context, history []domain.ChatTurn, message string) (string, error) {
	if o.apiKey == "" {
		return "", domain.ErrNotConfigured
	}

	if len(history) > openaiHistoryLimit {
		history = history[len(history)-openaiHistoryLimit:]
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(o.persona))
	for _, turn := range history {
		if turn.Role == domain.AssistantRole {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       o.model,
		Messages:    messages,
		Temperature: openai.Float(0.7),
		TopP:        openai.Float(0.95),
		MaxTokens:   openai.Int(512),
	})
	if err != nil {
		log.WithCtx(ctx).Error("OpenAI chat completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if len(completion.Choices) == 0 {
		return emptyReplyFallback, nil
	}
	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return emptyReplyFallback, nil
	}
	return text, nil
}
