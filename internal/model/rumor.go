package model

import "time"

// Rumor is a single unverified story circulating in Pjuskeby. Records are
// created by the content pipeline; this service only reads them and mutates
// the interaction counters.
type Rumor struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Content      string       `json:"content" yaml:"content"`
	Category     string       `json:"category" yaml:"category"`
	Date         time.Time    `json:"date" yaml:"date"`
	Interactions Interactions `json:"interactions" yaml:"interactions"`
}

// Interactions holds the per-rumor engagement counters. All four only ever
// increase; a rumor decoded without an interactions object counts as all
// zeroes.
type Interactions struct {
	Views     int64 `json:"views" yaml:"views"`
	Confirmed int64 `json:"confirmed" yaml:"confirmed"`
	Debunked  int64 `json:"debunked" yaml:"debunked"`
	Shared    int64 `json:"shared" yaml:"shared"`
}

// WithScore decorates a rumor with its computed trending score.
type WithScore struct {
	Rumor Rumor   `json:"rumor"`
	Score float64 `json:"score"`
}

// Reaction is one of the recognized reaction kinds.
type Reaction string

const (
	ReactionConfirmed Reaction = "confirmed"
	ReactionDebunked  Reaction = "debunked"
	ReactionShared    Reaction = "shared"
)

// Valid reports whether r is one of the three recognized reaction kinds.
func (r Reaction) Valid() bool {
	switch r {
	case ReactionConfirmed, ReactionDebunked, ReactionShared:
		return true
	}
	return false
}
