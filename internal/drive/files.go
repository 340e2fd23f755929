package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultPageSize caps the search result page.
const DefaultPageSize = 5

// searchFields is the projection requested per entry: identifier and
// display name, plus the pagination token (unused beyond the first page).
const searchFields = "nextPageToken, files(id, name)"

// Search executes a scoped files.list query: non-folder entries under
// folderID with a full-text match against text, excluding trashed
// entries. Results come back in server order, projected to File. Zero
// matches returns a non-nil empty slice and a nil error — callers branch
// on len, not on error.
func (c *Client) Search(ctx context.Context, folderID, text string) ([]File, error) {
	filter := SearchFilter(folderID, text)

	c.logger.Info("searching files",
		slog.String("folder_id", folderID),
		slog.Int("page_size", c.pageSize),
	)

	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	params.Set("q", filter)
	params.Set("fields", searchFields)

	resp, err := c.Do(ctx, http.MethodGet, "/files?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var flr fileListResponse
	if err := json.NewDecoder(resp.Body).Decode(&flr); err != nil {
		return nil, fmt.Errorf("drive: decoding file list response: %w", err)
	}

	files := make([]File, 0, len(flr.Files))
	for _, f := range flr.Files {
		files = append(files, File{ID: f.ID, Name: f.Name})
	}

	c.logger.Info("search complete",
		slog.String("folder_id", folderID),
		slog.Int("count", len(files)),
	)

	return files, nil
}
