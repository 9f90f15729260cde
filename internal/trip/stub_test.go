package trip

import (
	"context"
	"sync"

	"packntrack/internal/ai"
)

type stubProvider struct {
	mu      sync.Mutex
	key     string
	content string
	err     error
	calls   int
	last    ai.Prompt
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) HasCredentials() bool { return s.key != "" }

func (s *stubProvider) Complete(ctx context.Context, prompt ai.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

type stubGeocoder struct {
	results map[string][2]float64
	queries []string
}

func (g *stubGeocoder) Geocode(ctx context.Context, query string) (float64, float64, error) {
	g.queries = append(g.queries, query)
	r, ok := g.results[query]
	if !ok {
		return 0, 0, errNotFound
	}
	return r[0], r[1], nil
}
