package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/driveql/driveql/internal/config"
	"github.com/driveql/driveql/internal/drive"
	"github.com/driveql/driveql/internal/history"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search for files inside a Drive folder",
		Long: `Search for non-folder files inside a Drive folder by full-text match.

The folder comes from --folder, the DRIVEQL_FOLDER environment variable,
or the folder_id config key; the query from the argument or the query
config key. An empty query matches everything in the folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().String("folder", "", "ID of the folder to search in")
	cmd.Flags().Int("limit", 0, "maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig(config.CLIOverrides{FolderID: folder, PageSize: limit})
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)
	ctx := context.Background()

	query := cfg.Query
	if len(args) == 1 {
		query = args[0]
	}

	if cfg.FolderID == "" {
		return fmt.Errorf("no folder specified — pass --folder, set DRIVEQL_FOLDER, or set folder_id in the config file")
	}

	sess, err := drive.Authorize(ctx, authOptions(cfg), drive.BrowserConsent(openBrowser, logger), logger)
	if err != nil {
		return err
	}

	client := drive.NewClient(drive.DefaultBaseURL, defaultHTTPClient(), sess.TokenSource(ctx), logger, cfg.PageSize)

	files, err := client.Search(ctx, cfg.FolderID, query)
	if err != nil {
		return fmt.Errorf("searching files: %w", err)
	}

	recordHistory(ctx, cfg, query, len(files), logger)
	printSearchResults(os.Stdout, files)

	return nil
}

// recordHistory appends the executed search to the local history
// database. Best-effort: failures are logged, never propagated.
func recordHistory(ctx context.Context, cfg *config.Config, query string, count int, logger *slog.Logger) {
	store, err := history.Open(ctx, cfg.HistoryFile, logger)
	if err != nil {
		logger.Warn("skipping history", slog.String("error", err.Error()))
		return
	}

	defer store.Close()

	if err := store.Record(ctx, cfg.FolderID, query, count); err != nil {
		logger.Warn("recording history failed", slog.String("error", err.Error()))
	}
}
