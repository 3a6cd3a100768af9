package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marketpulse/pulse/internal/config"
	"github.com/marketpulse/pulse/pkg/types"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend health and all-time sentiment counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(configDir)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing .env and pulse.yaml")
	return cmd
}

// countStore is the slice of the record store the status report reads.
type countStore interface {
	AllTimeCounts(ctx context.Context) ([]types.TrendCount, error)
}

// bucketPinger reports archive bucket reachability.
type bucketPinger interface {
	Ping(ctx context.Context) bool
}

func runStatus(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Probe both backends even when one is down; a one-shot status that
	// stops at the first failure hides the state of the rest.
	st, dbErr := newStore(ctx, cfg)
	if st != nil {
		defer st.Close()
	}

	arc, err := newArchive(cfg)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	return printStatus(ctx, os.Stdout, st, dbErr, arc, cfg.S3Bucket)
}

func printStatus(ctx context.Context, w io.Writer, st countStore, dbErr error, arc bucketPinger, bucket string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	bold := color.New(color.Bold)

	if dbErr != nil {
		_, _ = red.Fprintf(w, "database: unreachable (%v)\n", dbErr)
	} else {
		_, _ = green.Fprintln(w, "database: OK")
	}

	if arc.Ping(ctx) {
		_, _ = green.Fprintf(w, "s3: OK (bucket %s)\n", bucket)
	} else {
		_, _ = red.Fprintf(w, "s3: unreachable (bucket %s)\n", bucket)
	}

	if dbErr != nil {
		return nil
	}

	counts, err := st.AllTimeCounts(ctx)
	if err != nil {
		return fmt.Errorf("querying counts: %w", err)
	}
	if len(counts) == 0 {
		_, _ = fmt.Fprintln(w, "No sentiment records yet.")
		return nil
	}

	_, _ = bold.Fprintln(w, "All-time sentiment counts:")
	var total int64
	for _, c := range counts {
		_, _ = fmt.Fprintf(w, "  %-10s %d\n", c.Sentiment, c.Count)
		total += c.Count
	}
	_, _ = fmt.Fprintf(w, "  %-10s %d\n", "TOTAL", total)
	return nil
}
