package newsletter

import (
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	out, err := Render(Data{
		Title:              "Pjuskeby Whisper 2026-08-28",
		Slug:               "weekly-20260828",
		Datetime:           "2026-08-28 06:00",
		PeriodFrom:         "2026-08-21",
		PeriodTo:           "2026-08-28",
		Preface:            "Lean in close.",
		Postscript:         "Until next week.",
		EditorsNote:        "The hat rumor refuses to die.",
		TotalRumors:        3,
		NewThisPeriod:      2,
		TotalViews:         60,
		MostActiveCategory: "mystery",
		Trending: []Item{
			{Title: "The hat", Excerpt: "It moved...", Category: "mystery", Views: 10, Created: "2026-08-26"},
		},
		NewThisWeek: []Item{
			{Title: "New bench", Excerpt: "By the harbour."},
		},
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for _, want := range []string{
		"slug: weekly-20260828",
		"The hat rumor refuses to die.",
		"Lean in close.",
		"### The hat",
		"busiest corner: mystery",
		"**New bench** — By the harbour.",
		"Until next week.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered newsletter missing %q\n---\n%s", want, out)
		}
	}
}

func TestRenderWithoutOptionalFields(t *testing.T) {
	out, err := Render(Data{Title: "T", Slug: "s", Datetime: "d"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if strings.Contains(out, "summary:") {
		t.Errorf("empty editor's note should omit summary block:\n%s", out)
	}
	if strings.Contains(out, "cover_image_url:") {
		t.Errorf("empty cover should omit cover_image_url:\n%s", out)
	}
	if strings.Contains(out, "Fresh whispers") {
		t.Errorf("empty new-this-week should omit section:\n%s", out)
	}
}

func TestExpandVars(t *testing.T) {
	now := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	got := ExpandVars("Whisper {.CurrentDate} ({.Period})", now, "2026-W35")
	if got != "Whisper 2026-08-28 (2026-W35)" {
		t.Errorf("ExpandVars = %q", got)
	}
	if got := ExpandVars("  ", now, "p"); got != "  " {
		t.Errorf("blank input modified: %q", got)
	}
}
