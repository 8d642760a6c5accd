package telegram

import (
	"fmt"
	"sort"
	"strings"

	"financial-news-classifier/internal/classifier/dto"
)

// FormatStatisticsForTelegram formats batch processing statistics into a
// Markdown message for Telegram.
func FormatStatisticsForTelegram(stats *dto.ProcessingStatistics) string {
	var b strings.Builder

	b.WriteString("📰 *Financial News Classification Report* 📰\n\n")
	b.WriteString(fmt.Sprintf("📄 *Total articles:* %d\n", stats.TotalArticles))
	b.WriteString(fmt.Sprintf("✅ *Categorized:* %d\n", stats.Categorized))
	b.WriteString(fmt.Sprintf("❓ *Unknown:* %d\n", stats.Unknown))
	b.WriteString(fmt.Sprintf("❌ *Errors:* %d\n", stats.Errors))
	b.WriteString(fmt.Sprintf("📊 *Success rate:* %.2f%%\n", stats.SuccessRate))

	if stats.TrackConfidence {
		b.WriteString(fmt.Sprintf("\n🎯 *Average confidence:* %.2f\n", stats.AverageConfidence))
		b.WriteString(fmt.Sprintf("🔼 High confidence (>0.8): %d\n", stats.HighConfidence))
		b.WriteString(fmt.Sprintf("🔽 Low confidence (<0.5): %d\n", stats.LowConfidence))
	}

	if len(stats.CategoryDistribution) > 0 {
		b.WriteString("\n*Category Distribution:*\n")
		for _, category := range sortedKeys(stats.CategoryDistribution) {
			count := stats.CategoryDistribution[category]
			percentage := float64(count) / float64(stats.TotalArticles) * 100
			b.WriteString(fmt.Sprintf("  • %s: %d (%.2f%%)\n", category, count, percentage))
		}
	}

	if len(stats.SentimentDistribution) > 0 {
		b.WriteString("\n*Sentiment Distribution:*\n")
		for _, sentiment := range sortedKeys(stats.SentimentDistribution) {
			count := stats.SentimentDistribution[sentiment]
			percentage := float64(count) / float64(stats.TotalArticles) * 100

			var icon string
			switch strings.ToLower(sentiment) {
			case "positive":
				icon = "😊"
			case "negative":
				icon = "😟"
			default:
				icon = "😐"
			}
			b.WriteString(fmt.Sprintf("  %s %s: %d (%.2f%%)\n", icon, sentiment, count, percentage))
		}
	}

	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
