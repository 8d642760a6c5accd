package repository

import (
	"fmt"
	"strings"

	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/internal/entity"
)

// BuildCategoryPrompt renders the category-classification prompt for an
// article. The categories are enumerated 1-based in their fixed ordinal order
// so numeric replies can be mapped back by position.
func BuildCategoryPrompt(articleText string, format dto.ReplyFormat) string {
	var categories strings.Builder
	for i, category := range entity.Categories() {
		categories.WriteString(fmt.Sprintf("%d. %s\n", i+1, category))
	}

	replyRule := "3. Respond ONLY with the category number (1-9)"
	if format == dto.ReplyFormatJSON {
		replyRule = `3. Respond ONLY with a JSON object: {"category_number": <1-9>, "confidence": <0.0-1.0>}`
	}

	return fmt.Sprintf(`Classify this financial news article into ONE of these categories:

%s
Rules:
1. Choose ONLY ONE category number
2. If the article doesn't clearly fit into specific categories 1-8, choose 9 (others)
%s
4. Don't explain your choice

Article:
%s

Category number:`, categories.String(), replyRule, articleText)
}

// BuildSentimentPrompt renders the sentiment-analysis prompt for an article.
func BuildSentimentPrompt(articleText string, format dto.ReplyFormat) string {
	replyRule := "2. Respond ONLY with the number (1-3)"
	if format == dto.ReplyFormatJSON {
		replyRule = `2. Respond ONLY with a JSON object: {"sentiment_number": <1-3>, "confidence": <0.0-1.0>}`
	}

	return fmt.Sprintf(`Analyze the sentiment of this financial news article. Choose ONE:
1. positive (indicates growth, profit, success, or positive market outlook)
2. negative (indicates decline, loss, failure, or negative market outlook)
3. neutral (balanced or purely factual information)

Rules:
1. Consider the overall financial impact and market implications
%s
3. Don't explain your choice

Article:
%s

Sentiment number:`, replyRule, articleText)
}
