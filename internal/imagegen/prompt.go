package imagegen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PromptData contains inputs for building a digest cover prompt.
type PromptData struct {
	Title       string
	Note        string
	Highlights  []string
	AspectRatio string
}

const defaultPrompt = `Create a whimsical storybook illustration for the cover of a small-town gossip digest.

Requirements:
- Aspect ratio: %s.
- Scene: the fictional Scandinavian village of Pjuskeby, crooked houses, gossiping neighbors, soft evening light.
- Theme: "%s".
- Mood line: "%s".
- Rumors of the week: %s.
- Style: hand-drawn, warm muted palette, gentle humor, no photos, no logos, no watermarks, no readable text.`

// BuildCoverPrompt builds a prompt from data, using template if provided.
// Template variables: {Title}, {Note}, {Highlights}, {AspectRatio}
func BuildCoverPrompt(d PromptData, template string) string {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "Pjuskeby Weekly Whisper"
	}
	note := strings.TrimSpace(d.Note)
	if note == "" {
		note = "The week's most talked-about whispers."
	}
	aspect := strings.TrimSpace(d.AspectRatio)
	if aspect == "" {
		aspect = "16:9"
	}
	hl := strings.Join(cleanHighlights(d.Highlights, 5, 80), "; ")
	if hl == "" {
		hl = "Whispers from around the village"
	}

	if strings.TrimSpace(template) == "" {
		return fmt.Sprintf(defaultPrompt, aspect, title, note, hl)
	}
	replacer := strings.NewReplacer(
		"{Title}", title,
		"{Note}", note,
		"{Highlights}", hl,
		"{AspectRatio}", aspect,
	)
	return replacer.Replace(template)
}

func cleanHighlights(items []string, maxItems, maxLen int) []string {
	out := make([]string, 0, min(len(items), maxItems))
	for _, it := range items {
		t := strings.TrimSpace(it)
		if t == "" {
			continue
		}
		if maxLen > 0 && utf8.RuneCountInString(t) > maxLen {
			t = truncateRunes(t, maxLen-3) + "..."
		}
		out = append(out, t)
		if len(out) >= maxItems {
			break
		}
	}
	return out
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
