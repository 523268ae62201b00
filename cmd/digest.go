package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pjuskeby-rumors/internal/ai"
	"pjuskeby-rumors/internal/digest"
	"pjuskeby-rumors/worker"

	"github.com/spf13/cobra"
)

var (
	digestDays   int
	digestTopN   int
	digestAsJSON bool
	digestForce  bool
)

// digestCmd force-generates the digest for the current period.
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Generate the digest newsletter now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if digestAsJSON {
			rumors, err := store.ListRumors(ctx)
			if err != nil {
				return err
			}
			d := digest.Build(rumors, time.Now(), digestDays, digestTopN)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}
		coverGen, err := coverGenerator(cfg)
		if err != nil {
			return err
		}

		b := &worker.DigestBuilder{
			Store:          store,
			Channel:        cfg.Digest.Channel,
			Frequency:      cfg.Digest.Frequency,
			PeriodDays:     pickInt(digestDays, cfg.Digest.PeriodDays),
			TopN:           pickInt(digestTopN, cfg.Digest.TopN),
			OutputDir:      cfg.Digest.OutputDir,
			Language:       cfg.Digest.Language,
			Title:          cfg.Digest.Title,
			Preface:        cfg.Digest.Preface,
			Postscript:     cfg.Digest.Postscript,
			Summarizer:     summarizer,
			CoverGen:       coverGen,
			PromptTemplate: cfg.Susanoo.PromptTemplate,
			AspectRatio:    cfg.Susanoo.AspectRatio,
		}
		path, err := b.GenerateOnce(ctx, digestForce)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to publish: period already published or no trending rumors (try --force).")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", path)
		return nil
	},
}

func pickInt(flag, def int) int {
	if flag > 0 {
		return flag
	}
	return def
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().IntVar(&digestDays, "days", 0, "digest period in days (default: config)")
	digestCmd.Flags().IntVar(&digestTopN, "top", 0, "trending list size (default: config)")
	digestCmd.Flags().BoolVar(&digestAsJSON, "json", false, "print the digest as JSON instead of writing a newsletter")
	digestCmd.Flags().BoolVar(&digestForce, "force", false, "regenerate even if this period was already published")
}
