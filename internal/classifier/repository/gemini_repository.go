package repository

import (
	"context"
	"fmt"
	"strings"

	"financial-news-classifier/internal/classifier/config"
	"financial-news-classifier/pkg/logger"

	"google.golang.org/genai"
)

// geminiRepository is an implementation of AIRepository that uses the Google
// Gemini API as an alternative to a local Ollama instance.
type geminiRepository struct {
	cfg         *config.Config
	logger      *logger.Logger
	genAiClient *genai.Client
}

// NewGeminiRepository creates a new instance of geminiRepository.
func NewGeminiRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	if cfg.Gemini.Model == "" {
		return nil, fmt.Errorf("%w: gemini model is not configured", ErrUnavailable)
	}

	r := &geminiRepository{
		cfg:         cfg,
		logger:      log,
		genAiClient: genAiClient,
	}

	if err := r.Ping(context.Background()); err != nil {
		return nil, err
	}

	return r, nil
}

// Ping verifies the Gemini API is reachable with the configured credentials.
func (r *geminiRepository) Ping(ctx context.Context) error {
	contents := []*genai.Content{
		genai.NewContentFromText("ping", "user"),
	}
	if _, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Generate sends the prompt to the Gemini API and returns the generated text.
func (r *geminiRepository) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return "", fmt.Errorf("%w: %w", ErrNoResponse, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content found in Gemini response", ErrNoResponse)
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
