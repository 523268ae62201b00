// Package trending computes engagement scores for rumors and ranks them.
// All functions are pure; the caller supplies the clock so tests can pin it.
package trending

import (
	"sort"
	"time"

	"pjuskeby-rumors/internal/model"
)

// Weights of the trending formula. Confirmations and shares push a rumor
// up, debunks pull it down, and every day of age costs half a point.
const (
	viewWeight      = 0.3
	confirmedWeight = 2.0
	debunkedWeight  = -1.0
	sharedWeight    = 3.0
	ageWeightPerDay = -0.5
)

// DefaultHotThreshold is the score above which a rumor counts as hot.
const DefaultHotThreshold = 10.0

// Score returns the trending score of a rumor at the given instant.
// The raw score is clamped at zero, so a heavily debunked or very old
// rumor bottoms out instead of going negative. A rumor dated in the
// future has negative age, so the age term turns into a bonus.
func Score(r model.Rumor, now time.Time) float64 {
	ageDays := now.Sub(r.Date).Hours() / 24
	it := r.Interactions
	score := float64(it.Views)*viewWeight +
		float64(it.Confirmed)*confirmedWeight +
		float64(it.Debunked)*debunkedWeight +
		float64(it.Shared)*sharedWeight +
		ageDays*ageWeightPerDay
	if score < 0 {
		return 0
	}
	return score
}

// SortByTrending scores every rumor and returns them ordered by descending
// score. The sort is stable: rumors with equal scores keep their input
// order. The input slice is not modified.
func SortByTrending(rumors []model.Rumor, now time.Time) []model.WithScore {
	out := make([]model.WithScore, 0, len(rumors))
	for _, r := range rumors {
		out = append(out, model.WithScore{Rumor: r, Score: Score(r, now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// TopTrending returns the n highest-scoring rumors, fewer if the input is
// shorter than n.
func TopTrending(rumors []model.Rumor, n int, now time.Time) []model.WithScore {
	ranked := SortByTrending(rumors, now)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// IsHot reports whether a rumor's score strictly exceeds the threshold.
// A rumor scoring exactly the threshold is not hot.
func IsHot(r model.Rumor, threshold float64, now time.Time) bool {
	return Score(r, now) > threshold
}
