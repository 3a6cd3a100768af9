package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marketpulse/pulse/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "pulse",
		Short:   "Market sentiment analysis API",
		Long:    `Pulse forwards text to AWS Comprehend for sentiment analysis, persists results in Postgres, archives raw inputs and derived results to S3, and serves trend and history aggregations over HTTP.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewServeCmd(),
		commands.NewMigrateCmd(),
		commands.NewStatusCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
