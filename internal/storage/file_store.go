package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pjuskeby-rumors/internal/model"
)

// FileStore persists the rumor array as a single JSON document, matching
// the content pipeline's store layout. Every mutation is serialized
// through one mutex and rewrites the whole document via a temp file and
// rename, so concurrent increments cannot lose updates.
//
// Digest publish markers are kept in memory only; the file store is the
// development backend and the Redis store is the one meant for real
// deployments.
type FileStore struct {
	mu        sync.Mutex
	path      string
	rumors    []model.Rumor
	index     map[string]int // id -> position in rumors
	published map[string]bool
}

// NewFileStore opens (or creates) the JSON document at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:      path,
		index:     map[string]int{},
		published: map[string]bool{},
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := json.Unmarshal(b, &s.rumors); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	for i, r := range s.rumors {
		s.index[r.ID] = i
	}
	return s, nil
}

// persist writes the full document. Caller must hold mu.
func (s *FileStore) persist() error {
	b, err := json.MarshalIndent(s.rumors, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) ListRumors(ctx context.Context) ([]model.Rumor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Rumor, len(s.rumors))
	copy(out, s.rumors)
	return out, nil
}

func (s *FileStore) GetRumor(ctx context.Context, id string) (model.Rumor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return model.Rumor{}, ErrNotFound
	}
	return s.rumors[i], nil
}

func (s *FileStore) UpsertRumor(ctx context.Context, r model.Rumor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[r.ID]; ok {
		// Keep the counters this store owns; only the record fields move.
		r.Interactions = s.rumors[i].Interactions
		s.rumors[i] = r
	} else {
		s.index[r.ID] = len(s.rumors)
		s.rumors = append(s.rumors, r)
	}
	return s.persist()
}

func (s *FileStore) IncrementView(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return 0, ErrNotFound
	}
	s.rumors[i].Interactions.Views++
	if err := s.persist(); err != nil {
		s.rumors[i].Interactions.Views--
		return 0, err
	}
	return s.rumors[i].Interactions.Views, nil
}

func (s *FileStore) IncrementReaction(ctx context.Context, id string, kind model.Reaction) (int64, error) {
	if !kind.Valid() {
		return 0, ErrInvalidReaction
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return 0, ErrNotFound
	}
	var c *int64
	switch kind {
	case model.ReactionConfirmed:
		c = &s.rumors[i].Interactions.Confirmed
	case model.ReactionDebunked:
		c = &s.rumors[i].Interactions.Debunked
	case model.ReactionShared:
		c = &s.rumors[i].Interactions.Shared
	}
	*c++
	if err := s.persist(); err != nil {
		*c--
		return 0, err
	}
	return *c, nil
}

func (s *FileStore) IsPublished(ctx context.Context, channel, period string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published[channel+":"+period], nil
}

func (s *FileStore) MarkPublished(ctx context.Context, channel, period string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[channel+":"+period] = true
	return nil
}

// Ping checks that the document's directory still exists, since every
// mutation rewrites the file there.
func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store directory %s: not a directory", dir)
	}
	return nil
}
