package telegram

import (
	"testing"

	"financial-news-classifier/internal/classifier/dto"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatisticsForTelegram(t *testing.T) {
	stats := &dto.ProcessingStatistics{
		TotalArticles:     4,
		Categorized:       3,
		Unknown:           1,
		SuccessRate:       75.0,
		TrackConfidence:   true,
		AverageConfidence: 0.82,
		HighConfidence:    2,
		LowConfidence:     1,
		CategoryDistribution: map[string]int{
			"oil_and_gas": 2,
			"banking":     1,
			"UNKNOWN":     1,
		},
		SentimentDistribution: map[string]int{
			"positive": 2,
			"negative": 1,
			"NEUTRAL":  1,
		},
	}

	message := FormatStatisticsForTelegram(stats)

	assert.Contains(t, message, "*Total articles:* 4")
	assert.Contains(t, message, "*Categorized:* 3")
	assert.Contains(t, message, "*Success rate:* 75.00%")
	assert.Contains(t, message, "*Average confidence:* 0.82")
	assert.Contains(t, message, "oil_and_gas: 2 (50.00%)")
	assert.Contains(t, message, "😊 positive: 2")
	assert.Contains(t, message, "😟 negative: 1")
}

func TestFormatStatisticsForTelegram_NoConfidence(t *testing.T) {
	stats := &dto.ProcessingStatistics{
		TotalArticles: 1,
		Categorized:   1,
		SuccessRate:   100.0,
	}

	message := FormatStatisticsForTelegram(stats)

	assert.NotContains(t, message, "Average confidence")
	assert.NotContains(t, message, "Category Distribution")
}
