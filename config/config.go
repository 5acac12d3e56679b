package config

import (
	"fmt"
	"os"
	"time"
)

// Provider selects which text-generation backend the relay talks to.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Config carries all environment-backed settings. A missing provider API
// key is deliberately not a load error: deployments have no startup
// validation phase, so the relay reports it per request instead.
type Config struct {
	Port     string
	Provider Provider

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	// BaseURL overrides the provider endpoint (OpenRouter, Ollama, or a
	// test stub). Empty means the provider's default.
	BaseURL string

	// UpstreamTimeout bounds the single outbound provider call.
	UpstreamTimeout time.Duration

	// RulesFile points to an externalized YAML intent table for the local
	// fallback matcher. Empty means the built-in table.
	RulesFile string

	JWTSecret     string
	ChatAPIKey    string
	ChatAPISecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		Provider:        Provider(getenv("LLM_PROVIDER", string(ProviderGemini))),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", "gpt-4o-mini"),
		BaseURL:         os.Getenv("LLM_BASE_URL"),
		UpstreamTimeout: 15 * time.Second,
		RulesFile:       os.Getenv("ASSISTANT_RULES"),
		JWTSecret:       getenv("JWT_SECRET", "dev-secret-change-in-production"),
		ChatAPIKey:      getenv("CHAT_API_KEY", "portfolio"),
		ChatAPISecret:   getenv("CHAT_API_SECRET", "letmein"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
