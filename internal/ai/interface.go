package ai

import (
	"context"
)

// Provider sends one system/user prompt pair to a chat model and returns the
// message content of the first completion, unparsed.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the provider in logs and metrics ("groq", "gemini").
	Name() string

	// HasCredentials reports whether an API key is currently configured.
	// It is checked before every call so a missing key never reaches the network.
	HasCredentials() bool

	// Complete performs exactly one upstream call. No retries.
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
