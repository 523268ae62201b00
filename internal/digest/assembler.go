// Package digest assembles the periodic rumor report: summary counters,
// the trending subset, and everything new in the period.
package digest

import (
	"time"

	"pjuskeby-rumors/internal/model"
	"pjuskeby-rumors/internal/trending"
)

const (
	// DefaultPeriodDays is the digest window when the caller does not ask
	// for another one.
	DefaultPeriodDays = 7
	// DefaultTopN bounds the trending list.
	DefaultTopN = 5

	excerptRunes = 100
)

// Build constructs a digest over the given rumors at the given instant.
// periodDays and topN fall back to the defaults when non-positive. The
// input is read-only; building never fails, even on an empty slice (the
// most-active category is simply absent then).
func Build(rumors []model.Rumor, now time.Time, periodDays, topN int) model.Digest {
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	periodStart := now.AddDate(0, 0, -periodDays)

	var newInPeriod []model.Rumor
	var totalViews int64
	for _, r := range rumors {
		totalViews += r.Interactions.Views
		if !r.Date.Before(periodStart) {
			newInPeriod = append(newInPeriod, r)
		}
	}

	d := model.Digest{
		GeneratedAt: now,
		Period:      model.Period{From: periodStart, To: now},
		Summary: model.DigestSummary{
			TotalRumors:        len(rumors),
			NewThisPeriod:      len(newInPeriod),
			TotalViews:         totalViews,
			MostActiveCategory: mostActiveCategory(rumors),
		},
	}

	for _, ws := range trending.TopTrending(rumors, topN, now) {
		d.Trending = append(d.Trending, entry(ws.Rumor, ws.Score))
	}
	for _, r := range newInPeriod {
		d.NewThisWeek = append(d.NewThisWeek, entry(r, trending.Score(r, now)))
	}
	return d
}

// mostActiveCategory returns the category with the highest rumor count.
// Ties go to the category seen first in slice order; empty input yields "".
func mostActiveCategory(rumors []model.Rumor) string {
	counts := map[string]int{}
	best := ""
	bestCount := 0
	for _, r := range rumors {
		counts[r.Category]++
		if counts[r.Category] > bestCount {
			best = r.Category
			bestCount = counts[r.Category]
		}
	}
	return best
}

func entry(r model.Rumor, score float64) model.DigestEntry {
	return model.DigestEntry{
		ID:           r.ID,
		Title:        r.Title,
		Excerpt:      Excerpt(r.Content),
		Category:     r.Category,
		Date:         r.Date,
		Interactions: r.Interactions,
		Score:        score,
	}
}

// Excerpt cuts content to a fixed number of characters and appends an
// ellipsis. The cut is a hard one, not word-boundary aware.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptRunes {
		return content
	}
	return string(runes[:excerptRunes]) + "..."
}
