package dto

// ProcessingStatistics aggregates the outcome of a batch run.
type ProcessingStatistics struct {
	TotalArticles int     `json:"total_articles"`
	Categorized   int     `json:"categorized"`
	Unknown       int     `json:"unknown"`
	Errors        int     `json:"errors"`
	SuccessRate   float64 `json:"success_rate"`

	TrackConfidence   bool    `json:"track_confidence"`
	AverageConfidence float64 `json:"average_confidence,omitempty"`
	HighConfidence    int     `json:"high_confidence,omitempty"`
	LowConfidence     int     `json:"low_confidence,omitempty"`

	CategoryDistribution  map[string]int            `json:"category_distribution"`
	SentimentDistribution map[string]int            `json:"sentiment_distribution,omitempty"`
	CategorySentiment     map[string]map[string]int `json:"category_sentiment,omitempty"`
}
