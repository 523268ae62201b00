package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pjuskeby-rumors/internal/ai"
	"pjuskeby-rumors/internal/pjuskeby"
	"pjuskeby-rumors/internal/server"
	"pjuskeby-rumors/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		var ws []worker.Worker

		// Content sync from the Pjuskeby site, if configured.
		if cfg.Content.BaseURL != "" {
			interval, err := time.ParseDuration(cfg.Content.FetchInterval)
			if err != nil {
				return err
			}
			slog.Info("starting rumor collector", "base_url", cfg.Content.BaseURL, "interval", interval)
			ws = append(ws, &worker.RumorCollector{
				Client:   pjuskeby.NewClient(cfg.Content.BaseURL),
				Store:    store,
				Interval: interval,
			})
		}

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}
		coverGen, err := coverGenerator(cfg)
		if err != nil {
			return err
		}

		builderInterval, err := time.ParseDuration(cfg.Digest.Interval)
		if err != nil {
			return err
		}
		ws = append(ws, &worker.DigestBuilder{
			Store:          store,
			Channel:        cfg.Digest.Channel,
			Frequency:      cfg.Digest.Frequency,
			PeriodDays:     cfg.Digest.PeriodDays,
			TopN:           cfg.Digest.TopN,
			OutputDir:      cfg.Digest.OutputDir,
			Interval:       builderInterval,
			Language:       cfg.Digest.Language,
			Title:          cfg.Digest.Title,
			Preface:        cfg.Digest.Preface,
			Postscript:     cfg.Digest.Postscript,
			Summarizer:     summarizer,
			CoverGen:       coverGen,
			PromptTemplate: cfg.Susanoo.PromptTemplate,
			AspectRatio:    cfg.Susanoo.AspectRatio,
		})

		srv := server.New(store, server.Options{
			HotThreshold: cfg.Trending.HotThreshold,
			TopN:         cfg.Trending.TopN,
			DigestDays:   cfg.Digest.PeriodDays,
			OutputDir:    cfg.Digest.OutputDir,
			Channel:      cfg.Digest.Channel,
		})
		ws = append(ws, &httpWorker{
			srv: &http.Server{Addr: cfg.Server.ListenAddr, Handler: srv.Router()},
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		slog.Info("serving", "addr", cfg.Server.ListenAddr, "store", cfg.Store.Driver)
		return worker.NewManager(ws...).Start(ctx)
	},
}

// httpWorker runs an http.Server under the worker manager, shutting it
// down when the context is cancelled.
type httpWorker struct {
	srv *http.Server
}

func (w *httpWorker) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- w.srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return w.srv.Shutdown(shutdownCtx)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
