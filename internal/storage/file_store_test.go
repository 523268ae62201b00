package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pjuskeby-rumors/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "rumors.json"))
	require.NoError(t, err)
	return s
}

func seedRumor(t *testing.T, s *FileStore, id string) {
	t.Helper()
	err := s.UpsertRumor(context.Background(), model.Rumor{
		ID:       id,
		Title:    "title " + id,
		Content:  "content",
		Category: "mystery",
		Date:     time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestFileStoreIncrementView(t *testing.T) {
	s := newTestStore(t)
	seedRumor(t, s, "r1")
	ctx := context.Background()

	n, err := s.IncrementView(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.IncrementView(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = s.IncrementView(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreIncrementReaction(t *testing.T) {
	s := newTestStore(t)
	seedRumor(t, s, "r1")
	ctx := context.Background()

	n, err := s.IncrementReaction(ctx, "r1", model.ReactionConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.IncrementReaction(ctx, "r1", model.Reaction("amplified"))
	assert.ErrorIs(t, err, ErrInvalidReaction)

	_, err = s.IncrementReaction(ctx, "nope", model.ReactionShared)
	assert.ErrorIs(t, err, ErrNotFound)

	r, err := s.GetRumor(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Interactions.Confirmed)
	assert.Equal(t, int64(0), r.Interactions.Debunked)
}

// Regression for the lost-update race: N concurrent view increments on one
// id must land exactly N.
func TestFileStoreConcurrentIncrements(t *testing.T) {
	s := newTestStore(t)
	seedRumor(t, s, "r1")
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.IncrementView(ctx, "r1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	r, err := s.GetRumor(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(n), r.Interactions.Views)
}

func TestFileStoreUpsertPreservesCounters(t *testing.T) {
	s := newTestStore(t)
	seedRumor(t, s, "r1")
	ctx := context.Background()

	_, err := s.IncrementView(ctx, "r1")
	require.NoError(t, err)

	// Content re-sync must not clobber the counters this store owns.
	err = s.UpsertRumor(ctx, model.Rumor{
		ID:           "r1",
		Title:        "updated title",
		Interactions: model.Interactions{Views: 999},
	})
	require.NoError(t, err)

	r, err := s.GetRumor(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "updated title", r.Title)
	assert.Equal(t, int64(1), r.Interactions.Views)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rumors.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertRumor(ctx, model.Rumor{ID: "r1", Title: "t"}))
	_, err = s.IncrementView(ctx, "r1")
	require.NoError(t, err)

	s2, err := NewFileStore(path)
	require.NoError(t, err)
	r, err := s2.GetRumor(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Interactions.Views)

	rumors, err := s2.ListRumors(ctx)
	require.NoError(t, err)
	assert.Len(t, rumors, 1)
}

func TestFileStorePing(t *testing.T) {
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.Mkdir(dir, 0o755))
	s, err := NewFileStore(filepath.Join(dir, "rumors.json"))
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	// A vanished directory means every future persist would fail.
	require.NoError(t, os.Remove(dir))
	assert.Error(t, s.Ping(ctx))
}

func TestFileStorePublishMarkers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.IsPublished(ctx, "weekly", "2026-W35")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.MarkPublished(ctx, "weekly", "2026-W35"))
	ok, err = s.IsPublished(ctx, "weekly", "2026-W35")
	require.NoError(t, err)
	assert.True(t, ok)
}
