package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"pjuskeby-rumors/internal/model"
	"pjuskeby-rumors/internal/pjuskeby"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedCmd loads a rumor file into the store. The file is the content
// pipeline's document: an array of rumor records, YAML or JSON (YAML is a
// superset, so one decoder covers both).
var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load rumor records from a YAML/JSON file into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		// Dates arrive as strings in both formats the pipeline emits.
		var recs []struct {
			ID           string             `yaml:"id"`
			Title        string             `yaml:"title"`
			Content      string             `yaml:"content"`
			Category     string             `yaml:"category"`
			Date         string             `yaml:"date"`
			Interactions model.Interactions `yaml:"interactions"`
		}
		if err := yaml.Unmarshal(b, &recs); err != nil {
			return fmt.Errorf("parse seed file: %w", err)
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stored := 0
		for _, rec := range recs {
			if rec.ID == "" {
				continue
			}
			date, err := pjuskeby.ParseDate(rec.Date)
			if err != nil {
				return fmt.Errorf("rumor %s: %w", rec.ID, err)
			}
			r := model.Rumor{
				ID:           rec.ID,
				Title:        rec.Title,
				Content:      rec.Content,
				Category:     rec.Category,
				Date:         date,
				Interactions: rec.Interactions,
			}
			if err := store.UpsertRumor(ctx, r); err != nil {
				return fmt.Errorf("store rumor %s: %w", rec.ID, err)
			}
			stored++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d rumors into the %s store\n", stored, cfg.Store.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
