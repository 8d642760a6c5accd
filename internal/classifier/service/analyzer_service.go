package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"financial-news-classifier/internal/classifier/config"
	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/internal/classifier/repository"
	"financial-news-classifier/internal/entity"
	"financial-news-classifier/pkg/logger"
)

// AnalyzerService classifies one article at a time. It is the error boundary
// for the per-article pipeline: Analyze always returns a result, never an error.
type AnalyzerService interface {
	Analyze(ctx context.Context, articleText string) entity.NewsAnalysis
	Ping(ctx context.Context) error
}

type analyzerService struct {
	cfg        *config.Config
	logger     *logger.Logger
	aiRepo     repository.AIRepository
	normalizer *Normalizer
}

// NewAnalyzerService creates a new instance of analyzerService.
func NewAnalyzerService(cfg *config.Config, log *logger.Logger, aiRepo repository.AIRepository) AnalyzerService {
	return &analyzerService{
		cfg:        cfg,
		logger:     log,
		aiRepo:     aiRepo,
		normalizer: NewNormalizer(dto.ReplyFormat(cfg.Processing.ReplyFormat)),
	}
}

// Ping verifies the text-generation backend is reachable.
func (s *analyzerService) Ping(ctx context.Context) error {
	return s.aiRepo.Ping(ctx)
}

// Analyze classifies the article's category and, when sentiment tracking is
// enabled, its sentiment. Wall-clock duration is recorded on every path.
func (s *analyzerService) Analyze(ctx context.Context, articleText string) (result entity.NewsAnalysis) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Analysis failed", logger.Field("panic", r))
			result = entity.NewsAnalysis{
				Category:       entity.CategoryOthers,
				Sentiment:      entity.SentimentNeutral,
				Success:        false,
				RawResponse:    fmt.Sprintf("analysis failed: %v", r),
				ProcessingTime: time.Since(start).Seconds(),
			}
		}
	}()

	text := strings.TrimSpace(articleText)
	if text == "" {
		return entity.NewsAnalysis{
			Category:       entity.CategoryOthers,
			Sentiment:      entity.SentimentNeutral,
			Success:        false,
			RawResponse:    "Empty text",
			ProcessingTime: 0.0,
		}
	}

	format := dto.ReplyFormat(s.cfg.Processing.ReplyFormat)

	categoryRaw, categoryErr := s.aiRepo.Generate(ctx, repository.BuildCategoryPrompt(text, format))

	var (
		sentimentRaw string
		sentimentErr error
	)
	if s.cfg.Processing.TrackSentiment {
		// Attempted even when the category call failed; both legs must
		// complete before a result is produced.
		sentimentRaw, sentimentErr = s.aiRepo.Generate(ctx, repository.BuildSentimentPrompt(text, format))
	}

	if categoryErr != nil || sentimentErr != nil {
		s.logger.Warn("No model response for article",
			logger.ErrorField(categoryErr),
			logger.ErrorField(sentimentErr),
		)
		return entity.NewsAnalysis{
			Category:       entity.CategoryOthers,
			Sentiment:      entity.SentimentNeutral,
			Success:        false,
			ProcessingTime: time.Since(start).Seconds(),
		}
	}

	category, categoryConfidence := s.normalizer.NormalizeCategory(categoryRaw)

	sentiment := entity.SentimentNeutral
	confidence := categoryConfidence
	rawResponse := fmt.Sprintf("Category: %s", categoryRaw)
	if s.cfg.Processing.TrackSentiment {
		var sentimentConfidence float64
		sentiment, sentimentConfidence = s.normalizer.NormalizeSentiment(sentimentRaw)
		confidence = (categoryConfidence + sentimentConfidence) / 2
		rawResponse = fmt.Sprintf("Category: %s, Sentiment: %s", categoryRaw, sentimentRaw)
	}

	success := true
	if format == dto.ReplyFormatJSON {
		success = confidence >= s.cfg.Processing.ConfidenceThreshold
	}

	return entity.NewsAnalysis{
		Category:        category,
		Sentiment:       sentiment,
		Success:         success,
		RawResponse:     rawResponse,
		ProcessingTime:  time.Since(start).Seconds(),
		ConfidenceScore: confidence,
	}
}
