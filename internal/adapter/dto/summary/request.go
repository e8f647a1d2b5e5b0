package summary

// SummarizeRequest represents the request to summarize free-form text
type SummarizeRequest struct {
	Text         string `json:"text" validate:"notblank"`
	CustomPrompt string `json:"customPrompt,omitempty"`
}

// ShareRequest represents the request to email a summary.
// Message is accepted for compatibility and not used.
type ShareRequest struct {
	Summary    string   `json:"summary" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1"`
	Subject    string   `json:"subject,omitempty"`
	Message    string   `json:"message,omitempty"`
}
