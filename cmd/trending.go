package cmd

import (
	"context"
	"fmt"
	"time"

	"pjuskeby-rumors/internal/trending"

	"github.com/spf13/cobra"
)

var trendingTopN int

// trendingCmd prints the current ranking to stdout.
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Print the top trending rumors",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rumors, err := store.ListRumors(ctx)
		if err != nil {
			return err
		}
		n := trendingTopN
		if n <= 0 {
			n = cfg.Trending.TopN
		}
		now := time.Now()
		for i, ws := range trending.TopTrending(rumors, n, now) {
			hot := ""
			if ws.Score > cfg.Trending.HotThreshold {
				hot = " HOT"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %6.1f%s  %-12s %s\n",
				i+1, ws.Score, hot, ws.Rumor.Category, ws.Rumor.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	trendingCmd.Flags().IntVar(&trendingTopN, "top", 0, "how many rumors to show (default: config)")
}
