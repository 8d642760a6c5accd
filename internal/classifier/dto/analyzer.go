package dto

// AnalyzeRequest is the payload for an ad-hoc analysis request.
type AnalyzeRequest struct {
	Article string `json:"article"`
}

// AnalyzeResponse carries a single analysis result.
type AnalyzeResponse struct {
	Category        string  `json:"category"`
	Sentiment       string  `json:"sentiment,omitempty"`
	ConfidenceScore float64 `json:"confidence_score"`
	Success         bool    `json:"success"`
	ProcessingTime  float64 `json:"processing_time"`
}

// ProcessRequest triggers a batch run over a CSV file.
type ProcessRequest struct {
	InputFile  string `json:"input_file,omitempty"`
	OutputFile string `json:"output_file,omitempty"`
}

// ProcessResponse reports the outcome of a batch run.
type ProcessResponse struct {
	Statistics *ProcessingStatistics `json:"statistics"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
