package ai

import (
	"net/http"

	"packntrack/internal/config"
)

// NewProvider builds the configured provider. Unknown names fall back to Groq;
// config validation rejects them before this point.
func NewProvider(cfg config.AIConfig) Provider {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiProvider(GeminiConfig{
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			APIKey:      cfg.GeminiKey,
		})
	default:
		return NewGroqProvider(GroqConfig{
			BaseURL:     cfg.GroqBaseURL,
			Model:       cfg.GroqModel,
			Temperature: cfg.Temperature,
			APIKey:      cfg.GroqKey,
			HTTPClient:  &http.Client{Timeout: cfg.UpstreamTimeout},
		})
	}
}
