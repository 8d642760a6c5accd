package dto

// ReplyFormat selects how the model is asked to reply and how replies are parsed.
type ReplyFormat string

const (
	// ReplyFormatNumeric asks the model for a bare ordinal digit.
	ReplyFormatNumeric ReplyFormat = "numeric"
	// ReplyFormatJSON asks the model for a JSON object carrying the ordinal
	// and a confidence score.
	ReplyFormatJSON ReplyFormat = "json"
)

// OllamaGenerateRequest is the request body for the Ollama /api/generate endpoint.
type OllamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// OllamaGenerateResponse is the subset of the Ollama reply the classifier consumes.
type OllamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaVersionResponse is the reply of the /api/version liveness probe.
type OllamaVersionResponse struct {
	Version string `json:"version"`
}

// CategoryReply is the structured JSON form of a category classification reply.
type CategoryReply struct {
	CategoryNumber int     `json:"category_number"`
	Confidence     float64 `json:"confidence"`
}

// SentimentReply is the structured JSON form of a sentiment analysis reply.
type SentimentReply struct {
	SentimentNumber int     `json:"sentiment_number"`
	Confidence      float64 `json:"confidence"`
}
