package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/johnquangdev/notes-summarizer/pkg/config"
)

// Message is a single outgoing email with an HTML body and a plain-text fallback
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers one message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends mail through an authenticated SMTP account (Gmail by default).
// Every Send opens its own connection so concurrent sends never share a session.
type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
}

// NewSMTPSender creates a sender from the mail configuration
func NewSMTPSender(cfg *config.MailConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
	}
}

// From returns the sender address
func (s *SMTPSender) From() string {
	return s.user
}

// Send delivers msg to its single recipient
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := s.newClient()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

// Verify connects and authenticates without sending anything
func (s *SMTPSender) Verify(ctx context.Context) error {
	client, err := s.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp connection failed: %w", err)
	}
	return client.Close()
}

func (s *SMTPSender) buildMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.user); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}

func (s *SMTPSender) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.password),
	}
	if s.port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return client, nil
}
