package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driveql/driveql/internal/config"
	"github.com/driveql/driveql/internal/history"
)

// defaultHistoryLimit is how many entries `history` shows by default.
const defaultHistoryLimit = 10

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", defaultHistoryLimit, "maximum number of entries to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig(config.CLIOverrides{})
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)
	ctx := context.Background()

	store, err := history.Open(ctx, cfg.HistoryFile, logger)
	if err != nil {
		return err
	}

	defer store.Close()

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		statusf(flagQuiet, "No searches recorded.\n")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(os.Stdout, formatHistoryEntry(e))
	}

	return nil
}
