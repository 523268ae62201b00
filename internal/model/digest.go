package model

import "time"

// Period is the date window a digest covers.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DigestSummary holds the aggregate counters for a digest period.
// MostActiveCategory is empty when the digest was built from no rumors.
type DigestSummary struct {
	TotalRumors        int    `json:"totalRumors"`
	NewThisPeriod      int    `json:"newThisPeriod"`
	TotalViews         int64  `json:"totalViews"`
	MostActiveCategory string `json:"mostActiveCategory,omitempty"`
}

// DigestEntry is the per-rumor projection used in digest lists. Content is
// replaced with a fixed-length excerpt.
type DigestEntry struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Excerpt      string       `json:"excerpt"`
	Category     string       `json:"category"`
	Date         time.Time    `json:"date"`
	Interactions Interactions `json:"interactions"`
	Score        float64      `json:"score"`
}

// Digest is a derived, time-windowed report. It is built fresh on every
// request and never persisted by this service.
type Digest struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Period      Period        `json:"period"`
	Summary     DigestSummary `json:"summary"`
	Trending    []DigestEntry `json:"trending"`
	NewThisWeek []DigestEntry `json:"newThisWeek"`
}
