package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/tmc/langchaingo/llms"
	"io"
	"net/http"
	"strings"
	"time"
)

// Gemini calls the generateContent REST endpoint.
type Gemini struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	StopSequences   []string `json:"stopSequences,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGemini returns a model whose HTTP requests are bounded by timeout.
func NewGemini(apiKey, baseURL, model string, temperature float64, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingCredential)
	}
	return &Gemini{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

func (g *Gemini) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	opts := llms.CallOptions{Model: g.model, Temperature: g.temperature}
	for _, o := range options {
		o(&opts)
	}

	temperature := opts.Temperature
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: opts.MaxTokens,
			StopSequences:   opts.StopWords,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, opts.Model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini api error: %s (code: %d)", out.Error.Message, out.Error.Code)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}
