package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroq(t *testing.T, key string, h http.HandlerFunc) (*GroqProvider, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	p := NewGroqProvider(GroqConfig{
		BaseURL:     srv.URL + "/openai/v1/",
		Temperature: 0.2,
		APIKey:      func() string { return key },
	})
	return p, &hits
}

func TestGroqComplete_SendsExpectedRequest(t *testing.T) {
	p, hits := newTestGroq(t, "gsk_test", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultGroqModel, body["model"])
		assert.InDelta(t, 0.2, body["temperature"], 1e-6)
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])

		msgs := body["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "sys", msgs[0].(map[string]any)["content"])
		assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
		assert.Equal(t, "usr", msgs[1].(map[string]any)["content"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	})

	got, err := p.Complete(context.Background(), Prompt{System: "sys", User: "usr"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestGroqComplete_NonSuccessIsGeneric(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusInternalServerError} {
		p, _ := newTestGroq(t, "k", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"secret details"}}`))
		})

		_, err := p.Complete(context.Background(), Prompt{})
		var se *StatusError
		require.True(t, errors.As(err, &se), "status %d", status)
		assert.Equal(t, status, se.StatusCode)
		assert.Equal(t, "Groq API Error", err.Error())
	}
}

func TestGroqComplete_EmptyChoices(t *testing.T) {
	p, _ := newTestGroq(t, "k", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := p.Complete(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestGroqComplete_MissingKeyNeverCallsUpstream(t *testing.T) {
	p, hits := newTestGroq(t, "  ", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called")
	})

	assert.False(t, p.HasCredentials())
	_, err := p.Complete(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestGroqComplete_HonoursContext(t *testing.T) {
	p, _ := newTestGroq(t, "k", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Complete(ctx, Prompt{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGroqProvider_Defaults(t *testing.T) {
	p := NewGroqProvider(GroqConfig{})
	assert.Equal(t, DefaultGroqBaseURL+"/chat/completions", p.endpoint)
	assert.Equal(t, DefaultGroqModel, p.model)
	assert.Equal(t, "groq", p.Name())
	assert.False(t, p.HasCredentials())
}
