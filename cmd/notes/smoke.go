package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/johnquangdev/notes-summarizer/pkg/client"
)

const smokeNotes = `
Meeting Notes - Product Development Team
Date: 2024-01-15
Attendees: John, Sarah, Mike, Lisa

Discussion Points:
- New feature development for mobile app
- User feedback analysis from beta testing
- Timeline for Q1 release
- Budget allocation for marketing

Action Items:
- John to complete UI mockups by Friday
- Sarah to analyze user feedback data
- Mike to prepare budget proposal
- Lisa to schedule next meeting

Next Meeting: January 22nd, 2024
`

const smokePrompt = "Summarize in bullet points highlighting key decisions and action items"

func newSmokeCmd(v *viper.Viper) *cobra.Command {
	var to []string

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Exercise health, summarize and optionally share against a running API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd, v)
			defer cancel()
			return smoke(ctx, cmd.OutOrStdout(), apiClient(v), to)
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "also share the summary with these recipients")
	return cmd
}

func smoke(ctx context.Context, out io.Writer, c *client.Client, to []string) error {
	failed := 0

	fmt.Fprintln(out, "1. Health check")
	if h, err := c.Health(ctx); err != nil {
		failed++
		fmt.Fprintf(out, "   FAIL %v\n", err)
	} else {
		fmt.Fprintf(out, "   ok   %s (%s)\n", h.Status, h.Environment)
	}

	fmt.Fprintln(out, "2. Summarize")
	res, err := c.Summarize(ctx, client.SummarizeRequest{Text: smokeNotes, CustomPrompt: smokePrompt})
	if err != nil {
		failed++
		fmt.Fprintf(out, "   FAIL %v\n", err)
	} else {
		fmt.Fprintf(out, "   ok   %s\n", preview(res.Summary, 200))
	}

	if len(to) > 0 {
		fmt.Fprintln(out, "3. Share")
		if res == nil {
			failed++
			fmt.Fprintln(out, "   FAIL no summary to share")
		} else if sr, err := c.Share(ctx, client.ShareRequest{Summary: res.Summary, Recipients: to, Subject: "Smoke test summary"}); err != nil {
			failed++
			fmt.Fprintf(out, "   FAIL %v\n", err)
		} else {
			fmt.Fprintf(out, "   ok   %s\n", sr.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, "All checks passed")
	return nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
