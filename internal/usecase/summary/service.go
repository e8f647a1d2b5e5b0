package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/notes-summarizer/errors"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/metrics"
	"github.com/johnquangdev/notes-summarizer/pkg/ai"
	"github.com/johnquangdev/notes-summarizer/pkg/config"
	"github.com/johnquangdev/notes-summarizer/pkg/mailer"
)

// Completer is the completion API collaborator
type Completer interface {
	Complete(ctx context.Context, messages []ai.Message) (*ai.Completion, error)
}

// Service defines the summarize and share use cases.
// Every returned error is an errors.AppError.
type Service interface {
	Summarize(ctx context.Context, in SummarizeInput) (*SummarizeResult, error)
	Share(ctx context.Context, in ShareInput) (*ShareResult, error)
}

// SummarizeInput is the validated summarize request
type SummarizeInput struct {
	Text         string
	CustomPrompt string
}

// SummarizeResult is the successful summarize outcome
type SummarizeResult struct {
	Summary      string
	OriginalText string
	CustomPrompt string
}

// ShareInput is the validated share request
type ShareInput struct {
	Summary    string
	Recipients []string
	Subject    string
}

// ShareResult is the successful share outcome
type ShareResult struct {
	Message    string
	Recipients []string
}

type service struct {
	completer Completer
	sender    mailer.Sender
	cfg       *config.Config
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService constructs the summary service.
// cfg is consulted on every call so missing credentials surface per request.
func NewService(completer Completer, sender mailer.Sender, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		completer: completer,
		sender:    sender,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
	}
}

// Summarize asks the completion API for a summary of in.Text
func (s *service) Summarize(ctx context.Context, in SummarizeInput) (*SummarizeResult, error) {
	if strings.TrimSpace(in.Text) == "" {
		s.metrics.ObserveSummarize(metrics.OutcomeInvalid)
		return nil, errors.ErrValidation("Text content is required")
	}
	if !s.cfg.GroqConfigured() {
		s.metrics.ObserveSummarize(metrics.OutcomeConfig)
		s.logger.Error("❌ Groq API key not configured")
		return nil, errors.ErrConfiguration("Groq API key not configured")
	}

	prompt := BuildPrompt(in.Text, in.CustomPrompt)
	s.logger.Debug("🤖 Prompt prepared",
		zap.String("prompt_head", truncate(prompt, 200)),
	)

	start := time.Now()
	completion, err := s.completer.Complete(ctx, buildMessages(prompt))
	s.metrics.ObserveUpstream("groq", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveSummarize(metrics.OutcomeFailed)
		s.logger.Error("❌ Summarization failed", zap.Error(err))
		return nil, errors.ErrSummaryFailed(err)
	}

	summary := completion.Content
	if summary == "" {
		summary = NoSummary
	}

	label := in.CustomPrompt
	if label == "" {
		label = DefaultPromptLabel
	}

	s.metrics.ObserveSummarize(metrics.OutcomeSuccess)
	s.logger.Info("✅ Summary generated",
		zap.Int("text_length", len(in.Text)),
		zap.Int("summary_length", len(summary)),
		zap.Int("completion_tokens", completion.CompletionTokens),
	)

	return &SummarizeResult{
		Summary:      summary,
		OriginalText: in.Text,
		CustomPrompt: label,
	}, nil
}

// Share emails the summary to every recipient concurrently.
// One failed delivery fails the whole request; there is no per-recipient report.
func (s *service) Share(ctx context.Context, in ShareInput) (*ShareResult, error) {
	if in.Summary == "" || len(in.Recipients) == 0 {
		s.metrics.ObserveShare(metrics.OutcomeInvalid, 0)
		return nil, errors.ErrValidation("Summary and recipients are required")
	}
	if !s.cfg.MailConfigured() {
		s.metrics.ObserveShare(metrics.OutcomeConfig, 0)
		s.logger.Error("❌ Email configuration missing")
		return nil, errors.ErrConfiguration("Email configuration not set up properly")
	}

	subject := in.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	body := RenderEmailHTML(subject, in.Summary)

	s.logger.Info("📤 Sending emails to recipients",
		zap.Strings("recipients", in.Recipients),
		zap.String("subject", subject),
	)

	start := time.Now()
	var g errgroup.Group
	for _, recipient := range in.Recipients {
		msg := mailer.Message{
			To:      recipient,
			Subject: subject,
			HTML:    body,
			Text:    in.Summary,
		}
		g.Go(func() error {
			return s.sender.Send(ctx, msg)
		})
	}
	err := g.Wait()
	s.metrics.ObserveUpstream("smtp", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveShare(metrics.OutcomeFailed, 0)
		s.logger.Error("❌ Email sharing failed", zap.Error(err))
		return nil, errors.ErrShareFailed(err)
	}

	s.metrics.ObserveShare(metrics.OutcomeSuccess, len(in.Recipients))
	s.logger.Info("✅ All emails sent successfully", zap.Int("count", len(in.Recipients)))

	return &ShareResult{
		Message:    fmt.Sprintf("Summary shared successfully with %d recipient(s)", len(in.Recipients)),
		Recipients: in.Recipients,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
