package summary

import (
	"fmt"
	"html"

	"github.com/johnquangdev/notes-summarizer/pkg/ai"
)

const (
	systemInstruction = "You are a professional meeting notes summarizer. Provide clear, well-structured summaries that are easy to read and understand."
	defaultInstruction = "Please provide a clear and structured summary of the following text. Focus on key points, main ideas, and important details:"

	// DefaultPromptLabel is echoed back when no custom prompt was given
	DefaultPromptLabel = "Default summarization"
	// NoSummary is returned when the completion has no content
	NoSummary = "No summary generated"
	// DefaultSubject is used for shared emails without a subject
	DefaultSubject = "Meeting Summary"
)

// BuildPrompt assembles the user prompt sent to the completion API
func BuildPrompt(text, customPrompt string) string {
	if customPrompt != "" {
		return customPrompt + "\n\nText to summarize:\n" + text
	}
	return defaultInstruction + "\n\n" + text
}

// buildMessages returns the fixed system instruction followed by the user prompt
func buildMessages(prompt string) []ai.Message {
	return []ai.Message{
		{Role: "system", Content: systemInstruction},
		{Role: "user", Content: prompt},
	}
}

// RenderEmailHTML renders the HTML body of a shared summary.
// Subject and summary are escaped; whitespace in the summary is preserved by CSS.
func RenderEmailHTML(subject, summary string) string {
	return fmt.Sprintf(`
      <h2>Meeting Summary</h2>
      <p><strong>Subject:</strong> %s</p>
      <hr>
      <div style="white-space: pre-wrap;">%s</div>
      <hr>
      <p><em>This summary was generated using AI-powered meeting notes summarizer.</em></p>
    `, html.EscapeString(subject), html.EscapeString(summary))
}
