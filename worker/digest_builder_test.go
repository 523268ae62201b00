package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pjuskeby-rumors/internal/markdown"
	"pjuskeby-rumors/internal/model"
	"pjuskeby-rumors/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)

func newBuilder(t *testing.T) (*DigestBuilder, storage.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "rumors.json"))
	require.NoError(t, err)
	b := &DigestBuilder{
		Store:      store,
		Channel:    "pjuskeby_weekly",
		Frequency:  "weekly",
		PeriodDays: 7,
		TopN:       5,
		OutputDir:  filepath.Join(dir, "out"),
		Title:      "Whisper {.Period}",
		Preface:    "Lean in close.",
		Now:        func() time.Time { return testNow },
	}
	return b, store
}

func seedTrending(t *testing.T, store storage.Store) {
	t.Helper()
	require.NoError(t, store.UpsertRumor(context.Background(), model.Rumor{
		ID:       "r1",
		Title:    "The bakery cat votes in council meetings",
		Content:  strings.Repeat("x", 150),
		Category: "politics",
		Date:     testNow.AddDate(0, 0, -2),
		Interactions: model.Interactions{
			Views: 40, Confirmed: 2, Shared: 1,
		},
	}))
}

func TestGenerateOnceWritesNewsletter(t *testing.T) {
	b, store := newBuilder(t)
	seedTrending(t, store)

	path, err := b.GenerateOnce(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(b.OutputDir, "pjuskeby_weekly", "weekly-20260828.md"), path)

	doc, err := markdown.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Whisper 2026-W35", doc.Title())
	assert.Equal(t, "weekly-20260828", doc.Slug())
	assert.Contains(t, doc.Body, "Lean in close.")
	assert.Contains(t, doc.Body, "The bakery cat votes in council meetings")
	// excerpt is the hard 100-character cut
	assert.Contains(t, doc.Body, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, doc.Body, strings.Repeat("x", 101))

	// The period is now marked published.
	ok, err := store.IsPublished(context.Background(), "pjuskeby_weekly", "2026-W35")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateOnceSkipsPublishedPeriod(t *testing.T) {
	b, store := newBuilder(t)
	seedTrending(t, store)
	require.NoError(t, store.MarkPublished(context.Background(), "pjuskeby_weekly", "2026-W35"))

	path, err := b.GenerateOnce(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, path)

	// force ignores the marker
	path, err = b.GenerateOnce(context.Background(), true)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGenerateOnceSkipsWithoutTrending(t *testing.T) {
	b, _ := newBuilder(t)
	path, err := b.GenerateOnce(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestPeriodKey(t *testing.T) {
	ts := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	if got := PeriodKey("weekly", ts); got != "2026-W35" {
		t.Errorf("weekly = %q", got)
	}
	if got := PeriodKey("daily", ts); got != "2026-08-28" {
		t.Errorf("daily = %q", got)
	}
	if got := PeriodKey("", ts); got != "2026-08-28" {
		t.Errorf("default = %q", got)
	}
}
