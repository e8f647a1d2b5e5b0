package ai

import (
	"context"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/notes-summarizer/pkg/config"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the model used when none is configured
	DefaultModel = "llama3-8b-8192"

	summaryTemperature = 0.3
	summaryMaxTokens   = 2048
)

// Message is one turn of a chat exchange
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// Completion is the outcome of a chat completion call.
// Content is empty when the upstream returned no choices or an empty message.
type Completion struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// GroqClient is a minimal client for Groq chat completions
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient creates a Groq client using values from the provided config.
// The API key may be empty; callers check for it before issuing requests.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, base, model string
	httpClient := &http.Client{}
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		model = cfg.Model
		httpClient.Timeout = cfg.Timeout
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = base
	clientConfig.HTTPClient = httpClient

	return &GroqClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// Model returns the model identifier sent with every request
func (g *GroqClient) Model() string {
	return g.model
}

// Complete sends the messages with the fixed summarization parameters
// and returns the first choice's content.
func (g *GroqClient) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    convertMessages(messages),
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	}

	// the upstream message is echoed to callers as-is
	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Completion{
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
	}
	return out, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}
