package llm

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/config"
)

var (
	ErrMissingCredential = errors.New("missing api credential")
	ErrEmptyCompletion   = errors.New("model returned no completion")
)

// Model is the part of a langchaingo LLM the agents use.
type Model interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// Client is a Model together with the configuration agents report.
type Client struct {
	Model
	Settings roles.LLMConfig
}

// New picks the provider from cfg. Gemini falls back to OpenAI when its
// credential is missing.
func New(cfg config.LLM) (*Client, error) {
	if cfg.Provider == config.ProviderGemini {
		g, err := NewGemini(cfg.GeminiKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.Temperature, cfg.RequestTimeout)
		if err == nil {
			return &Client{
				Model:    g,
				Settings: roles.LLMConfig{Provider: config.ProviderGemini, Model: cfg.GeminiModel, Temperature: cfg.Temperature},
			}, nil
		}
		log.Warn().Err(err).Msg("gemini initialization failed, falling back to openai")
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingCredential)
	}
	o, err := openai.New(openai.WithToken(cfg.OpenAIKey), openai.WithModel(cfg.OpenAIModel))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return &Client{
		Model:    o,
		Settings: roles.LLMConfig{Provider: config.ProviderOpenAI, Model: cfg.OpenAIModel, Temperature: cfg.Temperature},
	}, nil
}

// Static wraps any Model, typically a test double, as a Client.
func Static(m Model, settings roles.LLMConfig) *Client {
	return &Client{Model: m, Settings: settings}
}
