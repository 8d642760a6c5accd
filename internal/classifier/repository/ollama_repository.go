package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"financial-news-classifier/internal/classifier/config"
	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/pkg/logger"

	"golang.org/x/time/rate"
)

// ollamaRepository is an implementation of AIRepository that talks to a
// locally hosted Ollama text-generation endpoint.
type ollamaRepository struct {
	client  *http.Client
	cfg     *config.Config
	logger  *logger.Logger
	backoff BackoffPolicy
	limiter *rate.Limiter
}

// NewOllamaRepository creates a new instance of ollamaRepository. It probes
// the /api/version endpoint first; an unreachable service returns
// ErrUnavailable and no repository is constructed.
func NewOllamaRepository(cfg *config.Config, log *logger.Logger, backoff BackoffPolicy) (AIRepository, error) {
	timeout := cfg.Ollama.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.Ollama.MaxRequestPerMinute > 0 {
		secondsPerRequest := time.Minute / time.Duration(cfg.Ollama.MaxRequestPerMinute)
		limiter = rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	}

	r := &ollamaRepository{
		client: &http.Client{
			Timeout: timeout,
		},
		cfg:     cfg,
		logger:  log,
		backoff: backoff,
		limiter: limiter,
	}

	if err := r.Ping(context.Background()); err != nil {
		return nil, err
	}
	log.Info("Connected to Ollama",
		logger.StringField("base_url", cfg.Ollama.BaseURL),
		logger.StringField("model", cfg.Ollama.Model),
	)

	return r, nil
}

// Ping verifies the Ollama service is reachable via its version endpoint.
func (r *ollamaRepository) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := strings.TrimSuffix(r.cfg.Ollama.BaseURL, "/") + "/api/version"
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create probe request: %w", ErrUnavailable, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: version probe returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var version dto.OllamaVersionResponse
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return fmt.Errorf("%w: failed to decode version response: %w", ErrUnavailable, err)
	}

	return nil
}

// Generate sends the prompt to Ollama, retrying transient failures with
// exponential backoff. Exhausting the retries returns ErrNoResponse, never a
// partial result.
func (r *ollamaRepository) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.backoff.MaxRetries; attempt++ {
		if attempt > 0 {
			r.backoff.Sleep(r.backoff.Delay(attempt - 1))
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("failed to wait for request limit: %w", err)
			}
		}

		response, err := r.doGenerate(ctx, prompt)
		if err == nil {
			return response, nil
		}

		lastErr = err
		r.logger.Warn("Ollama request failed",
			logger.IntField("attempt", attempt+1),
			logger.IntField("max_retries", r.backoff.MaxRetries),
			logger.ErrorField(err),
		)
	}

	r.logger.Error("Ollama request failed after all retries",
		logger.IntField("max_retries", r.backoff.MaxRetries),
		logger.ErrorField(lastErr),
	)
	return "", fmt.Errorf("%w: %w", ErrNoResponse, lastErr)
}

func (r *ollamaRepository) doGenerate(ctx context.Context, prompt string) (string, error) {
	payload := dto.OllamaGenerateRequest{
		Model:       r.cfg.Ollama.Model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: r.cfg.Ollama.Temperature,
		TopP:        r.cfg.Ollama.TopP,
		MaxTokens:   r.cfg.Ollama.MaxTokens,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := strings.TrimSuffix(r.cfg.Ollama.BaseURL, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-OK response from Ollama: %d - %s", resp.StatusCode, string(body))
	}

	var generateResp dto.OllamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generateResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return strings.TrimSpace(generateResp.Response), nil
}
