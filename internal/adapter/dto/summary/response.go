package summary

// SummarizeResponse represents a generated summary
type SummarizeResponse struct {
	Summary      string `json:"summary"`
	OriginalText string `json:"originalText"`
	CustomPrompt string `json:"customPrompt"`
}

// ShareResponse represents the outcome of sharing a summary
type ShareResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}
