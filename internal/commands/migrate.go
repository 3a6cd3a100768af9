package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketpulse/pulse/internal/config"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the sentiment_data table and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(configDir)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing .env and pulse.yaml")
	return cmd
}

func runMigrate(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	fmt.Println("schema up to date")
	return nil
}
