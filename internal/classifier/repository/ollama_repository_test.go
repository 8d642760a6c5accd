package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"financial-news-classifier/internal/classifier/config"
	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOllamaConfig(baseURL string) *config.Config {
	return &config.Config{
		Ollama: config.Ollama{
			BaseURL:     baseURL,
			Model:       "llama2",
			Temperature: 0.1,
			TopP:        0.9,
			MaxTokens:   10,
		},
	}
}

func newOllamaServer(t *testing.T, generate http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.OllamaVersionResponse{Version: "0.1.0"})
	})
	mux.HandleFunc("/api/generate", generate)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func recordingBackoff(maxRetries int, baseDelay time.Duration, slept *[]time.Duration) BackoffPolicy {
	policy := NewBackoffPolicy(maxRetries, baseDelay)
	policy.Sleep = func(d time.Duration) {
		*slept = append(*slept, d)
	}
	return policy
}

func testRepoLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestOllamaRepository_GeneratePayload(t *testing.T) {
	var received dto.OllamaGenerateRequest
	server := newOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(dto.OllamaGenerateResponse{Response: " 5 \n", Done: true})
	})

	var slept []time.Duration
	repo, err := NewOllamaRepository(testOllamaConfig(server.URL), testRepoLogger(t), recordingBackoff(3, time.Second, &slept))
	require.NoError(t, err)

	response, err := repo.Generate(context.Background(), "classify this")
	require.NoError(t, err)

	assert.Equal(t, "5", response, "response is trimmed")
	assert.Equal(t, "llama2", received.Model)
	assert.Equal(t, "classify this", received.Prompt)
	assert.False(t, received.Stream)
	assert.Empty(t, slept, "no retries on first success")
}

func TestOllamaRepository_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := newOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "model loading", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(dto.OllamaGenerateResponse{Response: "3", Done: true})
	})

	var slept []time.Duration
	repo, err := NewOllamaRepository(testOllamaConfig(server.URL), testRepoLogger(t), recordingBackoff(3, 2*time.Second, &slept))
	require.NoError(t, err)

	response, err := repo.Generate(context.Background(), "classify this")
	require.NoError(t, err)

	assert.Equal(t, "3", response)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept, "delays double per attempt")
}

func TestOllamaRepository_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := newOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model loading", http.StatusInternalServerError)
	})

	var slept []time.Duration
	repo, err := NewOllamaRepository(testOllamaConfig(server.URL), testRepoLogger(t), recordingBackoff(3, time.Second, &slept))
	require.NoError(t, err)

	_, err = repo.Generate(context.Background(), "classify this")
	require.ErrorIs(t, err, ErrNoResponse)
	assert.Equal(t, int32(3), calls.Load(), "exactly MaxRetries attempts")
	assert.Len(t, slept, 2)
}

func TestNewOllamaRepository_ProbeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not ollama", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewOllamaRepository(testOllamaConfig(server.URL), testRepoLogger(t), NewBackoffPolicy(3, time.Second))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewOllamaRepository_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewOllamaRepository(testOllamaConfig(server.URL), testRepoLogger(t), NewBackoffPolicy(3, time.Second))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestBackoffPolicy_Delay(t *testing.T) {
	policy := NewBackoffPolicy(3, 2*time.Second)

	assert.Equal(t, 2*time.Second, policy.Delay(0))
	assert.Equal(t, 4*time.Second, policy.Delay(1))
	assert.Equal(t, 8*time.Second, policy.Delay(2))
}

func TestNewBackoffPolicy_Defaults(t *testing.T) {
	policy := NewBackoffPolicy(0, 0)

	assert.Equal(t, 3, policy.MaxRetries)
	assert.Equal(t, 2*time.Second, policy.BaseDelay)
	assert.NotNil(t, policy.Sleep)
}
