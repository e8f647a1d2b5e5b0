package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HealthResponse mirrors GET /api/health
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// SummarizeRequest mirrors the POST /api/summarize body
type SummarizeRequest struct {
	Text         string `json:"text"`
	CustomPrompt string `json:"customPrompt,omitempty"`
}

// SummarizeResponse mirrors the POST /api/summarize response
type SummarizeResponse struct {
	Summary      string `json:"summary"`
	OriginalText string `json:"originalText"`
	CustomPrompt string `json:"customPrompt"`
}

// ShareRequest mirrors the POST /api/share body
type ShareRequest struct {
	Summary    string   `json:"summary"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject,omitempty"`
}

// ShareResponse mirrors the POST /api/share response
type ShareResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the notes summarizer API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. http://localhost:5000
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// Health calls GET /api/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summarize calls POST /api/summarize
func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	var out SummarizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/summarize", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Share calls POST /api/share
func (c *Client) Share(ctx context.Context, req ShareRequest) (*ShareResponse, error) {
	var out ShareResponse
	if err := c.do(ctx, http.MethodPost, "/api/share", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
