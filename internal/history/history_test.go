package history

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestOpen_AppliesMigrations(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	s, err := Open(context.Background(), path, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestRecord_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "folder-1", "budget", 3))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "folder-1", entries[0].FolderID)
	assert.Equal(t, "budget", entries[0].Query)
	assert.Equal(t, 3, entries[0].ResultCount)
	assert.WithinDuration(t, time.Now(), entries[0].SearchedAt, time.Minute)
}

func TestRecent_MostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "f", "first", 0))
	require.NoError(t, s.Record(ctx, "f", "second", 1))
	require.NoError(t, s.Record(ctx, "f", "third", 2))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Query)
	assert.Equal(t, "second", entries[1].Query)
	assert.Equal(t, "first", entries[2].Query)
}

func TestRecent_RespectsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, "f", "q", i))
	}

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecent_NonPositiveLimitClampedToOne(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "f", "older", 0))
	require.NoError(t, s.Record(ctx, "f", "newest", 1))

	// LIMIT 0 would return nothing and a negative limit everything; both
	// clamp to the single most recent entry.
	for _, limit := range []int{0, -1} {
		entries, err := s.Recent(ctx, limit)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "newest", entries[0].Query)
	}
}

func TestReopen_PersistsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(ctx, path, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, "folder-1", "keep me", 1))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, path, testLogger())
	require.NoError(t, err)

	defer s2.Close()

	entries, err := s2.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep me", entries[0].Query)
}
