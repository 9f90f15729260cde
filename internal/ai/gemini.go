package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type GeminiConfig struct {
	Model       string
	Temperature float32
	APIKey      func() string
	// ClientOptions are appended after the API key, e.g. option.WithEndpoint in tests.
	ClientOptions []option.ClientOption
}

// GeminiProvider implements Provider using Google's Gemini models in JSON mode.
// A client is created per call because the key may change between requests.
type GeminiProvider struct {
	model       string
	temperature float32
	apiKey      func() string
	opts        []option.ClientOption
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	apiKey := cfg.APIKey
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &GeminiProvider{
		model:       model,
		temperature: cfg.Temperature,
		apiKey:      apiKey,
		opts:        cfg.ClientOptions,
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) HasCredentials() bool {
	return strings.TrimSpace(p.apiKey()) != ""
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	key := strings.TrimSpace(p.apiKey())
	if key == "" {
		return "", ErrMissingKey
	}

	opts := append([]option.ClientOption{option.WithAPIKey(key)}, p.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}
	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(p.temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", &StatusError{Provider: "Gemini", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoChoices
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	return cleanJSONString(responseText.String()), nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
