package storage

import (
	"context"
	"errors"

	"pjuskeby-rumors/internal/model"
)

// Sentinel errors surfaced by stores. The HTTP layer maps these onto 404
// and 400 responses; anything else is treated as a store failure.
var (
	ErrNotFound        = errors.New("rumor not found")
	ErrInvalidReaction = errors.New("invalid reaction type")
)

// Store is the persistence contract for rumor records and their
// interaction counters. Counter increments are atomic per rumor id:
// concurrent increments must never lose updates, and the returned count
// always reflects the persisted write.
//
// All counter mutation goes through IncrementView and IncrementReaction;
// no other component writes counters.
type Store interface {
	// ListRumors returns every stored rumor with current counters.
	ListRumors(ctx context.Context) ([]model.Rumor, error)
	// GetRumor returns one rumor by id, or ErrNotFound.
	GetRumor(ctx context.Context, id string) (model.Rumor, error)
	// UpsertRumor inserts or updates a rumor record. Counters of an
	// existing record are preserved; the incoming counters only seed
	// brand-new records.
	UpsertRumor(ctx context.Context, r model.Rumor) error

	// IncrementView bumps the view counter and returns the new value.
	IncrementView(ctx context.Context, id string) (int64, error)
	// IncrementReaction bumps one reaction counter and returns the new
	// value. Returns ErrInvalidReaction before touching the store when
	// kind is not recognized.
	IncrementReaction(ctx context.Context, id string, kind model.Reaction) (int64, error)

	// IsPublished and MarkPublished guard the periodic digest builder
	// against publishing the same period twice.
	IsPublished(ctx context.Context, channel, period string) (bool, error)
	MarkPublished(ctx context.Context, channel, period string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
