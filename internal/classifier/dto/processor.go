package dto

import "financial-news-classifier/internal/entity"

// ClassifiedArticle is one output row: the input article plus the appended
// classification columns.
type ClassifiedArticle struct {
	entity.NewsArticle
	Category   string
	Sentiment  string
	Confidence float64
}
