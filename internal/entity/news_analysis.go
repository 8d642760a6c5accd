package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// NewsCategory is a topic label for a financial news article.
type NewsCategory string

const (
	CategoryOilAndGas      NewsCategory = "oil_and_gas"
	CategoryAgriculture    NewsCategory = "agriculture"
	CategoryHousing        NewsCategory = "housing"
	CategoryBanking        NewsCategory = "banking"
	CategoryStockMarket    NewsCategory = "stock_market"
	CategoryCryptocurrency NewsCategory = "cryptocurrency"
	CategoryForex          NewsCategory = "forex"
	CategoryCommodities    NewsCategory = "commodities"
	CategoryOthers         NewsCategory = "others"
)

// Categories returns all categories in their fixed ordinal order. Prompts
// number the categories 1-based in this order and numeric model replies are
// mapped back through the same order.
func Categories() []NewsCategory {
	return []NewsCategory{
		CategoryOilAndGas,
		CategoryAgriculture,
		CategoryHousing,
		CategoryBanking,
		CategoryStockMarket,
		CategoryCryptocurrency,
		CategoryForex,
		CategoryCommodities,
		CategoryOthers,
	}
}

// CategoryByNumber maps a 1-based ordinal to its category.
func CategoryByNumber(n int) (NewsCategory, bool) {
	categories := Categories()
	if n < 1 || n > len(categories) {
		return CategoryOthers, false
	}
	return categories[n-1], true
}

// SentimentType is a sentiment label for a financial news article.
type SentimentType string

const (
	SentimentPositive SentimentType = "positive"
	SentimentNegative SentimentType = "negative"
	SentimentNeutral  SentimentType = "neutral"
)

// Sentiments returns all sentiments in their fixed ordinal order.
func Sentiments() []SentimentType {
	return []SentimentType{SentimentPositive, SentimentNegative, SentimentNeutral}
}

// SentimentByNumber maps a 1-based ordinal to its sentiment.
func SentimentByNumber(n int) (SentimentType, bool) {
	sentiments := Sentiments()
	if n < 1 || n > len(sentiments) {
		return SentimentNeutral, false
	}
	return sentiments[n-1], true
}

// NewsAnalysis is the outcome of analyzing a single article. It is created
// once by the analyzer and never mutated afterwards.
type NewsAnalysis struct {
	Category        NewsCategory
	Sentiment       SentimentType
	Success         bool
	RawResponse     string
	ProcessingTime  float64
	ConfidenceScore float64
}

// NewsAnalysisRecord is the persisted form of an analysis result.
type NewsAnalysisRecord struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Headline        string         `json:"headline"`
	PublishedDate   string         `json:"published_date"`
	ArticleHash     string         `gorm:"not null;index" json:"article_hash"`
	Category        string         `gorm:"not null" json:"category"`
	Sentiment       string         `json:"sentiment"`
	ConfidenceScore float64        `json:"confidence_score"`
	Success         bool           `json:"success"`
	ProcessingTime  float64        `json:"processing_time"`
	KeyTerms        pq.StringArray `gorm:"type:text[]" json:"key_terms"`
	RawResponse     datatypes.JSON `json:"raw_response"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the NewsAnalysisRecord model.
func (NewsAnalysisRecord) TableName() string {
	return "news_analyses"
}
