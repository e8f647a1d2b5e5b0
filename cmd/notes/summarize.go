package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/johnquangdev/notes-summarizer/pkg/client"
)

func newSummarizeCmd(v *viper.Viper) *cobra.Command {
	var (
		file    string
		prompt  string
		share   []string
		subject string
	)

	cmd := &cobra.Command{
		Use:     "summarize",
		Short:   "Summarize notes from a file or stdin, and optionally email the result",
		Example: "notes summarize --file standup.txt --share a@x.com,b@y.com --subject \"Standup\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readNotes(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, v)
			defer cancel()

			sess := client.NewSession(apiClient(v))
			sess.State.Text = text
			sess.State.CustomPrompt = prompt

			if !sess.Summarize(ctx) {
				return alertError(sess.State)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sess.State.Summary)

			if len(share) == 0 {
				return nil
			}

			for _, r := range share {
				sess.State.SetRecipientInput(r)
				sess.State.RecipientKey(",")
				if pending := strings.TrimSpace(sess.State.RecipientInput); pending != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping recipient %q: invalid or duplicate\n", pending)
					sess.State.SetRecipientInput("")
				}
			}
			if subject != "" {
				sess.State.Subject = subject
			}
			if !sess.Share(ctx) {
				return alertError(sess.State)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), sess.State.Alert.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read notes from this file instead of stdin")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "custom summarization instructions")
	cmd.Flags().StringSliceVar(&share, "share", nil, "email the summary to these recipients")
	cmd.Flags().StringVar(&subject, "subject", client.DefaultSubject, "email subject used with --share")
	return cmd
}

func readNotes(stdin io.Reader, file string) (string, error) {
	if file == "" || file == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	return string(b), nil
}

func alertError(s *client.State) error {
	if s.Alert == nil {
		return fmt.Errorf("request failed")
	}
	return fmt.Errorf("%s", s.Alert.Message)
}
