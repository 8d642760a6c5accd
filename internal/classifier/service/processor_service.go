package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"financial-news-classifier/internal/classifier/config"
	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/internal/classifier/repository"
	"financial-news-classifier/internal/entity"
	"financial-news-classifier/pkg/logger"
	redispkg "financial-news-classifier/pkg/redis"
	"financial-news-classifier/pkg/telegram"
	"financial-news-classifier/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// ProcessorService runs the batch pipeline: read the input table, classify
// every row sequentially, write the augmented output table and report
// aggregate statistics.
type ProcessorService interface {
	ProcessFile(ctx context.Context, inputPath, outputPath string) (*dto.ProcessingStatistics, error)
}

type processorService struct {
	cfg          *config.Config
	logger       *logger.Logger
	analyzer     AnalyzerService
	articleRepo  repository.ArticleRepository
	analysisRepo repository.NewsAnalysisRepository
	redisClient  *redispkg.Client
	notifier     telegram.Notifier
	normalizer   *Normalizer
	memoryCache  *gocache.Cache
	sleep        func(time.Duration)
}

// NewProcessorService creates a new instance of processorService. analysisRepo,
// redisClient and notifier may be nil when the corresponding feature is not
// configured.
func NewProcessorService(
	cfg *config.Config,
	log *logger.Logger,
	analyzer AnalyzerService,
	articleRepo repository.ArticleRepository,
	analysisRepo repository.NewsAnalysisRepository,
	redisClient *redispkg.Client,
	notifier telegram.Notifier,
) ProcessorService {
	cacheTTL := cfg.Processing.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &processorService{
		cfg:          cfg,
		logger:       log,
		analyzer:     analyzer,
		articleRepo:  articleRepo,
		analysisRepo: analysisRepo,
		redisClient:  redisClient,
		notifier:     notifier,
		normalizer:   NewNormalizer(dto.ReplyFormat(cfg.Processing.ReplyFormat)),
		memoryCache:  gocache.New(cacheTTL, 2*cacheTTL),
		sleep:        time.Sleep,
	}
}

// ProcessFile classifies every row of the input CSV and writes the output CSV.
// File-level failures (unreadable input, missing required columns, unwritable
// output) abort the batch; per-row failures only mark their own row.
func (s *processorService) ProcessFile(ctx context.Context, inputPath, outputPath string) (*dto.ProcessingStatistics, error) {
	s.logger.Info("Reading input file", logger.StringField("path", inputPath))
	articles, err := s.articleRepo.Read(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	s.logger.Info("Starting to process articles", logger.IntField("total", len(articles)))

	rows := make([]dto.ClassifiedArticle, 0, len(articles))
	for idx, article := range articles {
		rows = append(rows, s.processArticle(ctx, idx, article))
	}

	includeSentiment := s.cfg.Processing.TrackSentiment
	includeConfidence := dto.ReplyFormat(s.cfg.Processing.ReplyFormat) == dto.ReplyFormatJSON
	if err := s.articleRepo.Write(outputPath, rows, includeSentiment, includeConfidence); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}
	s.logger.Info("Processed data saved", logger.StringField("path", outputPath))

	stats := BuildStatistics(rows, includeConfidence)
	s.logStatistics(stats)

	if s.notifier != nil && s.cfg.Processing.NotifyTelegram {
		if err := s.notifier.SendMessage(telegram.FormatStatisticsForTelegram(stats)); err != nil {
			s.logger.Error("Failed to send Telegram notification", logger.ErrorField(err))
		}
	}

	return stats, nil
}

// processArticle classifies one row. Unexpected failures are contained here
// and surface only as the ERROR sentinel on this row.
func (s *processorService) processArticle(ctx context.Context, idx int, article entity.NewsArticle) (row dto.ClassifiedArticle) {
	row = dto.ClassifiedArticle{NewsArticle: article}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Error processing article",
				logger.IntField("index", idx),
				logger.Field("panic", r),
			)
			row.Category = CategoryError
			row.Sentiment = SentimentDefault
			row.Confidence = 0.0
		}
	}()

	text := strings.TrimSpace(article.Article)
	if text == "" {
		s.logger.Warn("Empty article", logger.IntField("index", idx))
		row.Category = CategoryUnknown
		row.Sentiment = SentimentDefault
		row.Confidence = 0.0
		return row
	}

	hash := utils.HashText(text)
	if result, ok := s.cachedResult(ctx, hash); ok {
		s.logger.Debug("Reusing cached analysis", logger.StringField("hash", hash))
		s.fillRow(&row, result)
		return row
	}

	result := s.analyzer.Analyze(ctx, text)
	s.cacheResult(ctx, hash, result)
	s.persistResult(ctx, article, hash, text, result)
	s.fillRow(&row, result)

	s.logger.Debug("Analyzed article",
		logger.IntField("index", idx),
		logger.StringField("category", row.Category),
		logger.Float64Field("processing_time", result.ProcessingTime),
	)

	if s.cfg.Processing.ArticleDelay > 0 {
		// Self-imposed rate limit toward the model-serving process.
		s.sleep(s.cfg.Processing.ArticleDelay)
	}

	return row
}

func (s *processorService) fillRow(row *dto.ClassifiedArticle, result entity.NewsAnalysis) {
	row.Category = string(result.Category)
	row.Sentiment = string(result.Sentiment)
	row.Confidence = result.ConfidenceScore
}

func (s *processorService) cachedResult(ctx context.Context, hash string) (entity.NewsAnalysis, bool) {
	if cached, ok := s.memoryCache.Get(hash); ok {
		if result, ok := cached.(entity.NewsAnalysis); ok {
			return result, true
		}
	}

	if s.redisClient != nil {
		payload, err := s.redisClient.Get(ctx, redisCacheKey(hash)).Bytes()
		if err == nil {
			var result entity.NewsAnalysis
			if err := json.Unmarshal(payload, &result); err == nil {
				s.memoryCache.SetDefault(hash, result)
				return result, true
			}
		}
	}

	return entity.NewsAnalysis{}, false
}

func (s *processorService) cacheResult(ctx context.Context, hash string, result entity.NewsAnalysis) {
	if !result.Success {
		return
	}

	s.memoryCache.SetDefault(hash, result)

	if s.redisClient != nil {
		payload, err := json.Marshal(result)
		if err != nil {
			return
		}
		if err := s.redisClient.Set(ctx, redisCacheKey(hash), payload, s.cfg.Processing.CacheTTL).Err(); err != nil {
			s.logger.Warn("Failed to cache result in redis", logger.ErrorField(err))
		}
	}
}

func (s *processorService) persistResult(ctx context.Context, article entity.NewsArticle, hash, text string, result entity.NewsAnalysis) {
	if s.analysisRepo == nil || !s.cfg.Processing.PersistResults {
		return
	}

	rawResponse, _ := json.Marshal(map[string]string{"raw_response": result.RawResponse})
	record := &entity.NewsAnalysisRecord{
		Headline:        article.Headline,
		PublishedDate:   article.Date,
		ArticleHash:     hash,
		Category:        string(result.Category),
		Sentiment:       string(result.Sentiment),
		ConfidenceScore: result.ConfidenceScore,
		Success:         result.Success,
		ProcessingTime:  result.ProcessingTime,
		KeyTerms:        s.normalizer.KeyTerms(text),
		RawResponse:     rawResponse,
	}

	if err := s.analysisRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to persist analysis record", logger.ErrorField(err))
	}
}

func (s *processorService) logStatistics(stats *dto.ProcessingStatistics) {
	s.logger.Info("Processing statistics",
		logger.IntField("total_articles", stats.TotalArticles),
		logger.IntField("categorized", stats.Categorized),
		logger.IntField("unknown", stats.Unknown),
		logger.IntField("errors", stats.Errors),
		logger.Float64Field("success_rate", stats.SuccessRate),
	)

	if stats.TrackConfidence {
		s.logger.Info("Confidence statistics",
			logger.Float64Field("average_confidence", stats.AverageConfidence),
			logger.IntField("high_confidence", stats.HighConfidence),
			logger.IntField("low_confidence", stats.LowConfidence),
		)
	}

	for category, count := range stats.CategoryDistribution {
		s.logger.Info("Category distribution",
			logger.StringField("category", category),
			logger.IntField("count", count),
		)
	}
	for sentiment, count := range stats.SentimentDistribution {
		s.logger.Info("Sentiment distribution",
			logger.StringField("sentiment", sentiment),
			logger.IntField("count", count),
		)
	}
	for category, sentiments := range stats.CategorySentiment {
		for sentiment, count := range sentiments {
			s.logger.Info("Category sentiment breakdown",
				logger.StringField("category", category),
				logger.StringField("sentiment", sentiment),
				logger.IntField("count", count),
			)
		}
	}
}

func redisCacheKey(hash string) string {
	return "news.analysis." + hash
}
