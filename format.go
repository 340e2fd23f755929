package main

import (
	"fmt"
	"io"
	"os"

	"github.com/driveql/driveql/internal/drive"
	"github.com/driveql/driveql/internal/history"
)

// statusf prints a status message to stderr unless quiet mode is set.
func statusf(quiet bool, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printSearchResults writes one line per result as "<name> (<id>)",
// or "No files found." when nothing matched.
func printSearchResults(w io.Writer, files []drive.File) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No files found.")
		return
	}

	for _, f := range files {
		fmt.Fprintf(w, "%s (%s)\n", f.Name, f.ID)
	}
}

// formatHistoryEntry renders one history row for the history command.
func formatHistoryEntry(e history.Entry) string {
	when := e.SearchedAt.Local().Format("2006-01-02 15:04")

	return fmt.Sprintf("%s  %s  %q  (%d results)", when, e.FolderID, e.Query, e.ResultCount)
}
