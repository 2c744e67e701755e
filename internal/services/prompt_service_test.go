package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequiresAPIKey(t *testing.T) {
	svc := NewPromptService(newTestConfig())

	_, err := svc.Generate(context.Background(), "Add dark mode", "")
	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Implement dark mode with a toggle."}},
			},
		})
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.OpenAIAPIKey = "sk-test"
	svc := NewPromptService(cfg)
	svc.apiURL = server.URL

	prompt, err := svc.Generate(context.Background(), "Add dark mode", "respect system preference")
	require.NoError(t, err)
	assert.Equal(t, "Implement dark mode with a toggle.", prompt)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Add dark mode")
	assert.Contains(t, gotReq.Messages[1].Content, "respect system preference")
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.OpenAIAPIKey = "sk-test"
	svc := NewPromptService(cfg)
	svc.apiURL = server.URL

	_, err := svc.Generate(context.Background(), "Anything", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.OpenAIAPIKey = "sk-test"
	svc := NewPromptService(cfg)
	svc.apiURL = server.URL

	_, err := svc.Generate(context.Background(), "Anything", "")
	assert.Error(t, err)
}
