package client

import (
	"regexp"
	"strings"
)

// DefaultSubject is the email subject a fresh session starts with
const DefaultSubject = "Meeting Summary"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AlertKind classifies a user-facing notice
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

// Alert is the single notice currently shown to the user
type Alert struct {
	Kind    AlertKind
	Message string
}

// State is everything the summarizer UI renders. Transitions are pure
// methods; a caller performs the network call between Begin* and its
// *Succeeded / *Failed counterpart.
type State struct {
	Text           string
	CustomPrompt   string
	Summary        string
	Summarizing    bool
	Sharing        bool
	Alert          *Alert
	ShowShare      bool
	Recipients     []string
	RecipientInput string
	Subject        string
}

// NewState returns the initial UI state
func NewState() *State {
	return &State{Subject: DefaultSubject}
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Busy reports whether a request is in flight
func (s *State) Busy() bool {
	return s.Summarizing || s.Sharing
}

// ClearAlert dismisses the current alert
func (s *State) ClearAlert() {
	s.Alert = nil
}

// EditSummary replaces the summary with user edits
func (s *State) EditSummary(summary string) {
	s.Summary = summary
}

// SetRecipientInput replaces the pending recipient text without committing it
func (s *State) SetRecipientInput(v string) {
	s.RecipientInput = v
}

// RecipientKey handles a key press in the recipient field. Enter and ","
// commit the trimmed pending input when it is a new valid address; the
// input is kept otherwise. It reports whether the key was consumed.
func (s *State) RecipientKey(key string) bool {
	if key != "Enter" && key != "," {
		return false
	}
	email := strings.TrimSpace(s.RecipientInput)
	if email != "" && IsValidEmail(email) && !s.hasRecipient(email) {
		s.Recipients = append(s.Recipients, email)
		s.RecipientInput = ""
	}
	return true
}

// TypeRecipients feeds a stream of typed characters through the recipient
// field, treating "," and "\n" as commit keys.
func (s *State) TypeRecipients(typed string) {
	for _, r := range typed {
		switch r {
		case ',':
			s.RecipientKey(",")
		case '\n':
			s.RecipientKey("Enter")
		default:
			s.RecipientInput += string(r)
		}
	}
}

// RemoveRecipient drops email from the recipient list
func (s *State) RemoveRecipient(email string) {
	out := make([]string, 0, len(s.Recipients))
	for _, r := range s.Recipients {
		if r != email {
			out = append(out, r)
		}
	}
	s.Recipients = out
}

func (s *State) hasRecipient(email string) bool {
	for _, r := range s.Recipients {
		if r == email {
			return true
		}
	}
	return false
}

// Reset returns to the initial state
func (s *State) Reset() {
	*s = *NewState()
}

// BeginSummarize validates the input and marks a summarize request in flight.
// It returns false, with an error alert set, when nothing should be sent.
func (s *State) BeginSummarize() bool {
	if s.Busy() {
		return false
	}
	if strings.TrimSpace(s.Text) == "" {
		s.Alert = &Alert{Kind: AlertError, Message: "Please enter some text to summarize."}
		return false
	}
	s.Summarizing = true
	s.Alert = nil
	return true
}

// SummarizeRequest builds the request body for the current state.
// A blank custom prompt is omitted so the server applies its default.
func (s *State) SummarizeRequest() SummarizeRequest {
	return SummarizeRequest{
		Text:         strings.TrimSpace(s.Text),
		CustomPrompt: strings.TrimSpace(s.CustomPrompt),
	}
}

// SummarizeSucceeded stores the summary and reveals the share panel
func (s *State) SummarizeSucceeded(summary string) {
	s.Summarizing = false
	s.Summary = summary
	s.ShowShare = true
	s.Alert = &Alert{Kind: AlertSuccess, Message: "Summary generated successfully!"}
}

// SummarizeFailed records the server's error message
func (s *State) SummarizeFailed(err error) {
	s.Summarizing = false
	s.Alert = &Alert{Kind: AlertError, Message: failureMessage(err, "Failed to generate summary")}
}

// BeginShare validates the share form and marks a share request in flight
func (s *State) BeginShare() bool {
	if s.Busy() {
		return false
	}
	if strings.TrimSpace(s.Summary) == "" {
		s.Alert = &Alert{Kind: AlertError, Message: "No summary to share."}
		return false
	}
	if len(s.Recipients) == 0 {
		s.Alert = &Alert{Kind: AlertError, Message: "Please add at least one recipient."}
		return false
	}
	s.Sharing = true
	s.Alert = nil
	return true
}

// ShareRequest builds the request body for the current state
func (s *State) ShareRequest() ShareRequest {
	recipients := make([]string, len(s.Recipients))
	copy(recipients, s.Recipients)
	subject := strings.TrimSpace(s.Subject)
	if subject == "" {
		subject = DefaultSubject
	}
	return ShareRequest{Summary: strings.TrimSpace(s.Summary), Recipients: recipients, Subject: subject}
}

// ShareSucceeded clears the share form and shows the server's message
func (s *State) ShareSucceeded(message string) {
	s.Sharing = false
	s.Recipients = nil
	s.RecipientInput = ""
	s.Subject = DefaultSubject
	s.Alert = &Alert{Kind: AlertSuccess, Message: message}
}

// ShareFailed records the error and keeps the form for a retry
func (s *State) ShareFailed(err error) {
	s.Sharing = false
	s.Alert = &Alert{Kind: AlertError, Message: failureMessage(err, "Failed to share summary")}
}

func failureMessage(err error, fallback string) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
