package service

import (
	"financial-news-classifier/internal/classifier/dto"
)

// Output sentinels for rows that were never classified.
const (
	CategoryUnknown  = "UNKNOWN"
	CategoryError    = "ERROR"
	SentimentDefault = "NEUTRAL"
)

// BuildStatistics aggregates the classified rows into batch statistics.
func BuildStatistics(rows []dto.ClassifiedArticle, trackConfidence bool) *dto.ProcessingStatistics {
	stats := &dto.ProcessingStatistics{
		TotalArticles:         len(rows),
		TrackConfidence:       trackConfidence,
		CategoryDistribution:  make(map[string]int),
		SentimentDistribution: make(map[string]int),
		CategorySentiment:     make(map[string]map[string]int),
	}

	var confidenceSum float64
	for _, row := range rows {
		switch row.Category {
		case CategoryUnknown:
			stats.Unknown++
		case CategoryError:
			stats.Errors++
		default:
			stats.Categorized++
		}

		stats.CategoryDistribution[row.Category]++
		if row.Sentiment != "" {
			stats.SentimentDistribution[row.Sentiment]++
			if stats.CategorySentiment[row.Category] == nil {
				stats.CategorySentiment[row.Category] = make(map[string]int)
			}
			stats.CategorySentiment[row.Category][row.Sentiment]++
		}

		confidenceSum += row.Confidence
		if row.Confidence > 0.8 {
			stats.HighConfidence++
		}
		if row.Confidence < 0.5 {
			stats.LowConfidence++
		}
	}

	if stats.TotalArticles > 0 {
		stats.SuccessRate = float64(stats.Categorized) / float64(stats.TotalArticles) * 100
		if trackConfidence {
			stats.AverageConfidence = confidenceSum / float64(stats.TotalArticles)
		}
	}
	if !trackConfidence {
		stats.HighConfidence = 0
		stats.LowConfidence = 0
	}

	return stats
}
