package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/utils/log"
)

const (
	// Gemini replays at most the last 10 turns to stay within token limits.
	geminiHistoryLimit = 10

	defaultGeminiModel = "gemini-1.5-flash"

	// emptyReplyFallback substitutes an empty generation. An empty reply is
	// a valid model outcome, not a transport failure.
	emptyReplyFallback = "I couldn't generate a response. Please try again."

	defaultTimeout = 15 * time.Second
)

// GeminiConfig carries the provider settings fixed at construction.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Gemini is the default text-generation provider.
type Gemini struct {
	client  *genai.Client
	model   string
	persona string
	apiKey  string
}

// NewGemini builds the provider with an immutable persona. A missing API
// key is tolerated here and reported per request, since the deployment has
// no startup validation phase.
func NewGemini(ctx context.Context, persona string, cfg GeminiConfig) (*Gemini, error) {
	g := &Gemini{
		model:   cfg.Model,
		persona: persona,
		apiKey:  cfg.APIKey,
	}
	if g.model == "" {
		g.model = defaultGeminiModel
	}
	if cfg.APIKey == "" {
		return g, nil
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			APIVersion: "v1beta",
			BaseURL:    cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	g.client = client

	return g, nil
}

// Generate relays one message plus truncated history. The persona goes in
// the dedicated system-instruction slot; history roles map onto Gemini's
// user/model vocabulary.
func (g *Gemini) Generate(ctx context.Context, history []domain.ChatTurn, message string) (string, error) {
	if g.apiKey == "" || g.client == nil {
		return "", domain.ErrNotConfigured
	}

	if len(history) > geminiHistoryLimit {
		history = history[len(history)-geminiHistoryLimit:]
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == domain.AssistantRole {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: g.persona}},
		},
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 512,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	})
	if err != nil {
		// Detail stays in server logs; callers only see the taxonomy error.
		log.WithCtx(ctx).Error("Gemini generate failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return emptyReplyFallback, nil
	}
	return text, nil
}

// extractText walks the candidate tree defensively. Missing intermediate
// nodes yield an empty string, never a panic.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
