package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

type GroqConfig struct {
	BaseURL     string
	Model       string
	Temperature float32
	// APIKey is resolved on every call.
	APIKey func() string
	// HTTPClient defaults to a client with a 60s timeout.
	HTTPClient *http.Client
}

// GroqProvider talks to the Groq OpenAI-compatible chat completions endpoint.
type GroqProvider struct {
	endpoint    string
	model       string
	temperature float32
	apiKey      func() string
	httpClient  *http.Client
}

func NewGroqProvider(cfg GroqConfig) *GroqProvider {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGroqModel
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	apiKey := cfg.APIKey
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &GroqProvider{
		endpoint:    base + "/chat/completions",
		model:       model,
		temperature: cfg.Temperature,
		apiKey:      apiKey,
		httpClient:  client,
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) HasCredentials() bool {
	return strings.TrimSpace(p.apiKey()) != ""
}

// Complete sends the prompt pair with a json_object response format hint.
// Any non-2xx status becomes a *StatusError without reading the body.
func (p *GroqProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	key := strings.TrimSpace(p.apiKey())
	if key == "" {
		return "", ErrMissingKey
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature:    p.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{Provider: "Groq", StatusCode: resp.StatusCode}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", ErrNoChoices
	}
	return cr.Choices[0].Message.Content, nil
}
