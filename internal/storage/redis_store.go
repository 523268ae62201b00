package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"pjuskeby-rumors/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps rumor records as JSON blobs and their counters in a
// per-rumor hash. Increments use HINCRBY, so concurrent mutations of the
// same counter are atomic on the server and lost updates cannot happen.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func idsKey() string {
	return "rumor:ids"
}

func itemKey(id string) string {
	return fmt.Sprintf("rumor:item:%s", id)
}

func countersKey(id string) string {
	return fmt.Sprintf("rumor:interactions:%s", id)
}

func publishedKey(channel, period string) string {
	return fmt.Sprintf("digest:published:%s:%s", channel, period)
}

func (s *RedisStore) UpsertRumor(ctx context.Context, r model.Rumor) error {
	// The record blob is stored without counters; the hash owns those.
	rec := r
	rec.Interactions = model.Interactions{}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, itemKey(r.ID), b, 0).Err(); err != nil {
		return err
	}
	added, err := s.rdb.SAdd(ctx, idsKey(), r.ID).Result()
	if err != nil {
		return err
	}
	if added == 1 {
		// First sighting: seed the counter hash from the incoming record.
		return s.rdb.HSet(ctx, countersKey(r.ID),
			"views", r.Interactions.Views,
			"confirmed", r.Interactions.Confirmed,
			"debunked", r.Interactions.Debunked,
			"shared", r.Interactions.Shared,
		).Err()
	}
	return nil
}

func (s *RedisStore) GetRumor(ctx context.Context, id string) (model.Rumor, error) {
	var zero model.Rumor
	b, err := s.rdb.Get(ctx, itemKey(id)).Bytes()
	if err == redis.Nil {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	var r model.Rumor
	if err := json.Unmarshal(b, &r); err != nil {
		return zero, err
	}
	counts, err := s.rdb.HGetAll(ctx, countersKey(id)).Result()
	if err != nil {
		return zero, err
	}
	r.Interactions = parseCounters(counts)
	return r, nil
}

func (s *RedisStore) ListRumors(ctx context.Context) ([]model.Rumor, error) {
	ids, err := s.rdb.SMembers(ctx, idsKey()).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Rumor, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetRumor(ctx, id)
		if err == ErrNotFound {
			// Blob expired or removed out-of-band; skip the stale id.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RedisStore) IncrementView(ctx context.Context, id string) (int64, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	return s.rdb.HIncrBy(ctx, countersKey(id), "views", 1).Result()
}

func (s *RedisStore) IncrementReaction(ctx context.Context, id string, kind model.Reaction) (int64, error) {
	if !kind.Valid() {
		return 0, ErrInvalidReaction
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	return s.rdb.HIncrBy(ctx, countersKey(id), string(kind), 1).Result()
}

func (s *RedisStore) ensureExists(ctx context.Context, id string) error {
	ok, err := s.rdb.SIsMember(ctx, idsKey(), id).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) IsPublished(ctx context.Context, channel, period string) (bool, error) {
	res, err := s.rdb.Get(ctx, publishedKey(channel, period)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == "1", nil
}

func (s *RedisStore) MarkPublished(ctx context.Context, channel, period string) error {
	return s.rdb.Set(ctx, publishedKey(channel, period), "1", 90*24*time.Hour).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func parseCounters(m map[string]string) model.Interactions {
	get := func(k string) int64 {
		n, _ := strconv.ParseInt(m[k], 10, 64)
		return n
	}
	return model.Interactions{
		Views:     get("views"),
		Confirmed: get("confirmed"),
		Debunked:  get("debunked"),
		Shared:    get("shared"),
	}
}
