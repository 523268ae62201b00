package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"pjuskeby-rumors/internal/ai"
	"pjuskeby-rumors/internal/digest"
	"pjuskeby-rumors/internal/imagegen"
	"pjuskeby-rumors/internal/model"
	"pjuskeby-rumors/internal/newsletter"
	"pjuskeby-rumors/internal/storage"
)

// DigestBuilder writes one newsletter file per period into the channel's
// output directory, guarded by the store's publish markers so a period is
// never published twice.
type DigestBuilder struct {
	Store      storage.Store
	Channel    string
	Frequency  string // "daily" or "weekly"
	PeriodDays int
	TopN       int
	OutputDir  string
	Interval   time.Duration // how often to evaluate
	Language   string
	Title      string // optional template, supports newsletter.ExpandVars
	Preface    string
	Postscript string

	Summarizer     ai.Summarizer      // optional editor's note
	CoverGen       imagegen.Generator // optional cover art
	PromptTemplate string
	AspectRatio    string

	// Now is the clock used for scoring and period keys; tests pin it.
	Now func() time.Time
}

func (w *DigestBuilder) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	if w.Now == nil {
		w.Now = time.Now
	}
	channelDir := filepath.Join(w.OutputDir, w.Channel)
	if err := os.MkdirAll(channelDir, 0o755); err != nil {
		return err
	}
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *DigestBuilder) runOnce(ctx context.Context) {
	path, err := w.GenerateOnce(ctx, false)
	if err != nil {
		log.Printf("digest-builder: %v", err)
		return
	}
	if path != "" {
		log.Printf("digest-builder: published %s", path)
	}
}

// GenerateOnce builds and writes the newsletter for the current period.
// It returns the written path, or "" when there was nothing to publish
// (period already published, or no trending rumors). With force set the
// publish marker is ignored and the file overwritten.
func (w *DigestBuilder) GenerateOnce(ctx context.Context, force bool) (string, error) {
	if w.Now == nil {
		w.Now = time.Now
	}
	now := w.Now().UTC()
	period := PeriodKey(w.Frequency, now)
	if !force {
		published, err := w.Store.IsPublished(ctx, w.Channel, period)
		if err != nil {
			return "", fmt.Errorf("check published: %w", err)
		}
		if published {
			return "", nil
		}
	}

	rumors, err := w.Store.ListRumors(ctx)
	if err != nil {
		return "", fmt.Errorf("list rumors: %w", err)
	}
	d := digest.Build(rumors, now, w.PeriodDays, w.TopN)
	if len(d.Trending) == 0 {
		return "", nil
	}

	md, err := w.render(ctx, d, period, now)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	path := filepath.Join(w.OutputDir, w.Channel, w.filename(now))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := w.Store.MarkPublished(ctx, w.Channel, period); err != nil {
		return "", fmt.Errorf("mark published: %w", err)
	}
	return path, nil
}

func (w *DigestBuilder) filename(now time.Time) string {
	return fmt.Sprintf("%s-%s.md", strings.ToLower(w.Frequency), now.UTC().Format("20060102"))
}

func (w *DigestBuilder) render(ctx context.Context, d model.Digest, period string, now time.Time) (string, error) {
	name := w.filename(now)
	slug := strings.TrimSuffix(name, ".md")
	title := strings.TrimSpace(newsletter.ExpandVars(w.Title, now, period))
	if title == "" {
		title = fmt.Sprintf("Pjuskeby Whisper %s", now.Format("2006-01-02"))
	}
	data := newsletter.Data{
		Title:              title,
		Slug:               slug,
		Datetime:           now.Format("2006-01-02 15:04"),
		PeriodFrom:         d.Period.From.UTC().Format("2006-01-02"),
		PeriodTo:           d.Period.To.UTC().Format("2006-01-02"),
		Preface:            newsletter.ExpandVars(w.Preface, now, period),
		Postscript:         newsletter.ExpandVars(w.Postscript, now, period),
		TotalRumors:        d.Summary.TotalRumors,
		NewThisPeriod:      d.Summary.NewThisPeriod,
		TotalViews:         d.Summary.TotalViews,
		MostActiveCategory: d.Summary.MostActiveCategory,
		Trending:           toItems(d.Trending),
		NewThisWeek:        toItems(d.NewThisWeek),
	}

	if w.Summarizer != nil {
		if note, err := w.Summarizer.EditorsNote(ctx, d.Trending, w.Language); err == nil {
			data.EditorsNote = strings.TrimSpace(note)
		}
	}
	if w.CoverGen != nil {
		coverPath := filepath.Join(w.OutputDir, w.Channel, slug, "cover.webp")
		highlights := make([]string, 0, len(d.Trending))
		for _, e := range d.Trending {
			highlights = append(highlights, e.Title)
		}
		prompt := imagegen.BuildCoverPrompt(imagegen.PromptData{
			Title:       data.Title,
			Note:        data.EditorsNote,
			Highlights:  highlights,
			AspectRatio: w.AspectRatio,
		}, w.PromptTemplate)
		if err := w.CoverGen.GenerateCover(ctx, prompt, coverPath); err != nil {
			log.Printf("digest-builder: cover generation failed: %v", err)
		} else {
			data.CoverImageURL = filepath.ToSlash(filepath.Join(slug, "cover.webp"))
		}
	}

	out, err := newsletter.Render(data)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(out) {
		out = string([]rune(out))
	}
	return out, nil
}

func toItems(entries []model.DigestEntry) []newsletter.Item {
	items := make([]newsletter.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, newsletter.Item{
			Title:     e.Title,
			Excerpt:   e.Excerpt,
			Category:  e.Category,
			Score:     e.Score,
			Views:     e.Interactions.Views,
			Confirmed: e.Interactions.Confirmed,
			Debunked:  e.Interactions.Debunked,
			Shared:    e.Interactions.Shared,
			Created:   e.Date.UTC().Format("2006-01-02"),
		})
	}
	return items
}

// PeriodKey names the publish-marker period for a frequency, e.g.
// "2026-W35" for weekly and "2026-08-29" for daily.
func PeriodKey(freq string, t time.Time) string {
	utc := t.UTC()
	switch strings.ToLower(freq) {
	case "weekly":
		y, wk := utc.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, wk)
	default: // daily
		return utc.Format("2006-01-02")
	}
}
