package repository

import (
	"testing"

	"financial-news-classifier/internal/classifier/dto"

	"github.com/stretchr/testify/assert"
)

func TestBuildCategoryPrompt(t *testing.T) {
	prompt := BuildCategoryPrompt("Oil prices surged today", dto.ReplyFormatNumeric)

	assert.Contains(t, prompt, "1. oil_and_gas")
	assert.Contains(t, prompt, "5. stock_market")
	assert.Contains(t, prompt, "9. others")
	assert.Contains(t, prompt, "choose 9 (others)")
	assert.Contains(t, prompt, "Respond ONLY with the category number (1-9)")
	assert.Contains(t, prompt, "Oil prices surged today")
	assert.NotContains(t, prompt, "category_number")
}

func TestBuildCategoryPrompt_JSONFormat(t *testing.T) {
	prompt := BuildCategoryPrompt("Oil prices surged today", dto.ReplyFormatJSON)

	assert.Contains(t, prompt, `{"category_number": <1-9>, "confidence": <0.0-1.0>}`)
	assert.NotContains(t, prompt, "Respond ONLY with the category number (1-9)")
}

func TestBuildSentimentPrompt(t *testing.T) {
	prompt := BuildSentimentPrompt("Bank profits fell sharply", dto.ReplyFormatNumeric)

	assert.Contains(t, prompt, "1. positive")
	assert.Contains(t, prompt, "2. negative")
	assert.Contains(t, prompt, "3. neutral")
	assert.Contains(t, prompt, "Respond ONLY with the number (1-3)")
	assert.Contains(t, prompt, "Bank profits fell sharply")
}

func TestBuildSentimentPrompt_JSONFormat(t *testing.T) {
	prompt := BuildSentimentPrompt("Bank profits fell sharply", dto.ReplyFormatJSON)

	assert.Contains(t, prompt, `{"sentiment_number": <1-3>, "confidence": <0.0-1.0>}`)
}
