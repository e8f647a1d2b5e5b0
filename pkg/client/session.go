package client

import "context"

// Session drives a State against a Client, one request at a time
type Session struct {
	State  *State
	client *Client
}

// NewSession starts a session with a fresh state
func NewSession(c *Client) *Session {
	return &Session{State: NewState(), client: c}
}

// Summarize sends the current text and applies the outcome to the state.
// It returns false when validation stopped the request or the call failed.
func (s *Session) Summarize(ctx context.Context) bool {
	if !s.State.BeginSummarize() {
		return false
	}
	res, err := s.client.Summarize(ctx, s.State.SummarizeRequest())
	if err != nil {
		s.State.SummarizeFailed(err)
		return false
	}
	s.State.SummarizeSucceeded(res.Summary)
	return true
}

// Share emails the current summary and applies the outcome to the state
func (s *Session) Share(ctx context.Context) bool {
	if !s.State.BeginShare() {
		return false
	}
	res, err := s.client.Share(ctx, s.State.ShareRequest())
	if err != nil {
		s.State.ShareFailed(err)
		return false
	}
	s.State.ShareSucceeded(res.Message)
	return true
}
