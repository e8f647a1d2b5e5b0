package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/johnquangdev/notes-summarizer/pkg/config"
	"github.com/johnquangdev/notes-summarizer/pkg/mailer"
)

type mailVerifier interface {
	Verify(ctx context.Context) error
}

var newMailVerifier = func(cfg *config.MailConfig) mailVerifier {
	return mailer.NewSMTPSender(cfg)
}

func newCheckMailCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check-mail",
		Short: "Verify the SMTP credentials the API will use",
		Long: "Reports which credentials are set, then connects and authenticates " +
			"to the SMTP server without sending anything.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, v)
			defer cancel()
			return checkMail(ctx, cmd.OutOrStdout(), cfg)
		},
	}
}

func checkMail(ctx context.Context, out io.Writer, cfg *config.Config) error {
	fmt.Fprintln(out, "Environment variables:")
	fmt.Fprintf(out, "  EMAIL_USER:   %s\n", setOrMissing(cfg.Mail.User))
	fmt.Fprintf(out, "  EMAIL_PASS:   %s\n", setOrMissing(cfg.Mail.Password))
	fmt.Fprintf(out, "  GROQ_API_KEY: %s\n", setOrMissing(cfg.Groq.APIKey))

	if !cfg.MailConfigured() {
		return fmt.Errorf("email configuration is incomplete: set EMAIL_USER and EMAIL_PASS")
	}

	fmt.Fprintf(out, "Connecting to %s:%d...\n", cfg.Mail.Host, cfg.Mail.Port)
	if err := newMailVerifier(&cfg.Mail).Verify(ctx); err != nil {
		fmt.Fprintln(out, "Common fixes:")
		fmt.Fprintln(out, "  - enable 2-step verification on the Gmail account")
		fmt.Fprintln(out, "  - use a 16-character App Password, not the account password")
		fmt.Fprintln(out, "  - set EMAIL_USER to the full address")
		return fmt.Errorf("email connection failed: %w", err)
	}
	fmt.Fprintln(out, "Email connection successful")
	return nil
}

func setOrMissing(v string) string {
	if v == "" {
		return "missing"
	}
	return "set"
}
