package service

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/internal/entity"
)

// Default confidence scores per fallback tier. Numeric and keyword matches
// get a fixed heuristic score; the sentiment terminal fallback keeps a higher
// score than the category one because neutral is a safe prior while others is
// an explicit escape label, not a guess.
const (
	digitConfidence           = 0.8
	keywordConfidence         = 0.8
	neutralFallbackConfidence = 0.6
)

// The pattern deliberately matches only a single non-nested brace pair; a
// nested object falls through to the next tier.
var (
	jsonObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)
	digitRunPattern   = regexp.MustCompile(`\d+`)
	nonTextPattern    = regexp.MustCompile(`[^a-z0-9 _]+`)
)

type categoryKeyword struct {
	keyword  string
	category entity.NewsCategory
}

// Scanned in declared order; the first substring match wins.
var categoryKeywords = []categoryKeyword{
	{"stock", entity.CategoryStockMarket},
	{"equity", entity.CategoryStockMarket},
	{"shares", entity.CategoryStockMarket},
	{"market", entity.CategoryStockMarket},
	{"oil", entity.CategoryOilAndGas},
	{"gas", entity.CategoryOilAndGas},
	{"energy", entity.CategoryOilAndGas},
	{"petroleum", entity.CategoryOilAndGas},
	{"bank", entity.CategoryBanking},
	{"loan", entity.CategoryBanking},
	{"credit", entity.CategoryBanking},
	{"crypto", entity.CategoryCryptocurrency},
	{"bitcoin", entity.CategoryCryptocurrency},
	{"ethereum", entity.CategoryCryptocurrency},
	{"forex", entity.CategoryForex},
	{"currency", entity.CategoryForex},
	{"commodity", entity.CategoryCommodities},
	{"gold", entity.CategoryCommodities},
	{"metal", entity.CategoryCommodities},
	{"crop", entity.CategoryAgriculture},
	{"farm", entity.CategoryAgriculture},
	{"grain", entity.CategoryAgriculture},
	{"house", entity.CategoryHousing},
	{"property", entity.CategoryHousing},
	{"mortgage", entity.CategoryHousing},
}

type sentimentKeyword struct {
	keyword   string
	sentiment entity.SentimentType
}

var sentimentKeywords = []sentimentKeyword{
	{"positive", entity.SentimentPositive},
	{"growth", entity.SentimentPositive},
	{"profit", entity.SentimentPositive},
	{"success", entity.SentimentPositive},
	{"negative", entity.SentimentNegative},
	{"decline", entity.SentimentNegative},
	{"loss", entity.SentimentNegative},
	{"fail", entity.SentimentNegative},
}

// Normalizer turns raw model replies into validated labels with a confidence
// score. Both normalize methods are total: any input degrades through the
// fallback tiers, never to an error.
type Normalizer struct {
	format dto.ReplyFormat
}

// NewNormalizer creates a normalizer for the given reply format.
func NewNormalizer(format dto.ReplyFormat) *Normalizer {
	return &Normalizer{format: format}
}

// NormalizeCategory parses a raw category reply. Precedence: structured JSON
// (json mode only), first digit run, keyword match, then (others, 0.0).
func (n *Normalizer) NormalizeCategory(raw string) (entity.NewsCategory, float64) {
	if n.format == dto.ReplyFormatJSON {
		if object := jsonObjectPattern.FindString(raw); object != "" {
			var reply dto.CategoryReply
			if err := json.Unmarshal([]byte(object), &reply); err == nil {
				if category, ok := entity.CategoryByNumber(reply.CategoryNumber); ok {
					return category, clampConfidence(reply.Confidence)
				}
			}
		}
	}

	if digits := digitRunPattern.FindString(raw); digits != "" {
		if number, err := strconv.Atoi(digits); err == nil {
			if category, ok := entity.CategoryByNumber(number); ok {
				return category, digitConfidence
			}
		}
	}

	normalized := normalizeText(raw)
	for _, mapping := range categoryKeywords {
		if strings.Contains(normalized, mapping.keyword) {
			return mapping.category, keywordConfidence
		}
	}

	return entity.CategoryOthers, 0.0
}

// NormalizeSentiment parses a raw sentiment reply with the same tier
// precedence as NormalizeCategory. The terminal fallback is (neutral, 0.6).
func (n *Normalizer) NormalizeSentiment(raw string) (entity.SentimentType, float64) {
	if n.format == dto.ReplyFormatJSON {
		if object := jsonObjectPattern.FindString(raw); object != "" {
			var reply dto.SentimentReply
			if err := json.Unmarshal([]byte(object), &reply); err == nil {
				if sentiment, ok := entity.SentimentByNumber(reply.SentimentNumber); ok {
					return sentiment, clampConfidence(reply.Confidence)
				}
			}
		}
	}

	if digits := digitRunPattern.FindString(raw); digits != "" {
		if number, err := strconv.Atoi(digits); err == nil {
			if sentiment, ok := entity.SentimentByNumber(number); ok {
				return sentiment, digitConfidence
			}
		}
	}

	normalized := normalizeText(raw)
	for _, mapping := range sentimentKeywords {
		if strings.Contains(normalized, mapping.keyword) {
			return mapping.sentiment, keywordConfidence
		}
	}

	return entity.SentimentNeutral, neutralFallbackConfidence
}

// KeyTerms returns the distinct category keywords found in the article text,
// in table order. Used as a diagnostic on persisted results.
func (n *Normalizer) KeyTerms(text string) []string {
	normalized := normalizeText(text)
	var terms []string
	for _, mapping := range categoryKeywords {
		if strings.Contains(normalized, mapping.keyword) {
			terms = append(terms, mapping.keyword)
		}
	}
	return terms
}

func normalizeText(raw string) string {
	return nonTextPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "")
}

func clampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
