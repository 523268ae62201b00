package worker

import (
	"context"
	"log/slog"
	"time"

	"pjuskeby-rumors/internal/pjuskeby"
	"pjuskeby-rumors/internal/storage"
)

// RumorCollector periodically pulls the rumor list from the content site
// and upserts it into the store. Counters of known rumors are untouched;
// the store owns those.
type RumorCollector struct {
	Client   *pjuskeby.Client
	Store    storage.Store
	Interval time.Duration
}

func (w *RumorCollector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}

	// initial run
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

func (w *RumorCollector) runOnce(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	rumors, err := w.Client.Rumors(fetchCtx)
	if err != nil {
		slog.Error("collector: fetch rumors failed", "error", err)
		return
	}
	stored := 0
	for _, r := range rumors {
		if r.ID == "" {
			continue
		}
		if err := w.Store.UpsertRumor(ctx, r); err != nil {
			slog.Error("collector: store error", "id", r.ID, "error", err)
			continue
		}
		stored++
	}
	slog.Info("collector: sync completed", "fetched", len(rumors), "stored", stored)
}
