package service

import (
	"testing"

	"financial-news-classifier/internal/classifier/dto"

	"github.com/stretchr/testify/assert"
)

func TestBuildStatistics(t *testing.T) {
	rows := []dto.ClassifiedArticle{
		{Category: "oil_and_gas", Sentiment: "positive", Confidence: 0.9},
		{Category: "oil_and_gas", Sentiment: "negative", Confidence: 0.6},
		{Category: "banking", Sentiment: "neutral", Confidence: 0.9},
		{Category: CategoryUnknown, Sentiment: SentimentDefault, Confidence: 0.0},
		{Category: CategoryError, Sentiment: SentimentDefault, Confidence: 0.0},
	}

	stats := BuildStatistics(rows, true)

	assert.Equal(t, 5, stats.TotalArticles)
	assert.Equal(t, 3, stats.Categorized)
	assert.Equal(t, 1, stats.Unknown)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 60.0, stats.SuccessRate)

	assert.Equal(t, 2, stats.CategoryDistribution["oil_and_gas"])
	assert.Equal(t, 1, stats.CategoryDistribution["banking"])
	assert.Equal(t, 1, stats.CategoryDistribution[CategoryUnknown])
	assert.Equal(t, 1, stats.SentimentDistribution["positive"])
	assert.Equal(t, 2, stats.SentimentDistribution[SentimentDefault])
	assert.Equal(t, 1, stats.CategorySentiment["oil_and_gas"]["positive"])
	assert.Equal(t, 1, stats.CategorySentiment["oil_and_gas"]["negative"])

	assert.True(t, stats.TrackConfidence)
	assert.InDelta(t, 0.48, stats.AverageConfidence, 1e-9)
	assert.Equal(t, 2, stats.HighConfidence)
	assert.Equal(t, 2, stats.LowConfidence)
}

func TestBuildStatistics_ConfidenceDisabled(t *testing.T) {
	rows := []dto.ClassifiedArticle{
		{Category: "banking", Sentiment: "neutral", Confidence: 0.9},
	}

	stats := BuildStatistics(rows, false)

	assert.False(t, stats.TrackConfidence)
	assert.Zero(t, stats.AverageConfidence)
	assert.Zero(t, stats.HighConfidence)
	assert.Zero(t, stats.LowConfidence)
}

func TestBuildStatistics_Empty(t *testing.T) {
	stats := BuildStatistics(nil, true)

	assert.Zero(t, stats.TotalArticles)
	assert.Zero(t, stats.SuccessRate)
	assert.Zero(t, stats.AverageConfidence)
}
