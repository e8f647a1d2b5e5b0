package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/johnquangdev/notes-summarizer/pkg/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "notes",
		Short:         "Command line client for the Notes Summarizer API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return nil
		},
	}

	root.PersistentFlags().String("api-url", "http://localhost:5000", "base URL of the API")
	root.PersistentFlags().Duration("timeout", 2*time.Minute, "timeout for each command")

	if err := v.BindPFlag("api-url", root.PersistentFlags().Lookup("api-url")); err != nil {
		panic(err)
	}
	if err := v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout")); err != nil {
		panic(err)
	}
	// API_URL matches the variable the smoke script always read
	if err := v.BindEnv("api-url", "NOTES_API_URL", "API_URL"); err != nil {
		panic(err)
	}
	v.SetEnvPrefix("notes")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newHealthCmd(v),
		newSummarizeCmd(v),
		newCheckMailCmd(v),
		newSmokeCmd(v),
	)
	return root
}

func apiClient(v *viper.Viper) *client.Client {
	return client.New(v.GetString("api-url"))
}

func commandContext(cmd *cobra.Command, v *viper.Viper) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, v.GetDuration("timeout"))
}

func newHealthCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd, v)
			defer cancel()

			h, err := apiClient(v).Health(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (environment %s, %s)\n", h.Status, h.Message, h.Environment, h.Timestamp)
			return nil
		},
	}
}
