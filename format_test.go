package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driveql/driveql/internal/drive"
	"github.com/driveql/driveql/internal/history"
)

func TestPrintSearchResults_Empty(t *testing.T) {
	var buf bytes.Buffer

	printSearchResults(&buf, nil)

	assert.Equal(t, "No files found.\n", buf.String())
}

func TestPrintSearchResults_Entries(t *testing.T) {
	var buf bytes.Buffer

	printSearchResults(&buf, []drive.File{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
	})

	assert.Equal(t, "a (1)\nb (2)\n", buf.String())
}

func TestFormatHistoryEntry(t *testing.T) {
	e := history.Entry{
		FolderID:    "folder-1",
		Query:       "budget",
		ResultCount: 3,
		SearchedAt:  time.Date(2026, 8, 25, 9, 30, 0, 0, time.Local),
	}

	got := formatHistoryEntry(e)

	assert.Contains(t, got, "2026-08-25 09:30")
	assert.Contains(t, got, "folder-1")
	assert.Contains(t, got, `"budget"`)
	assert.Contains(t, got, "(3 results)")
}
