package cmd

import (
	"fmt"
	"strings"
	"time"

	"pjuskeby-rumors/internal/config"
	"pjuskeby-rumors/internal/imagegen"
)

// coverGenerator builds the Susanoo cover generator when configured;
// returns a nil Generator otherwise.
func coverGenerator(cfg config.Config) (imagegen.Generator, error) {
	if strings.TrimSpace(cfg.Susanoo.BaseURL) == "" || strings.TrimSpace(cfg.Susanoo.APIKey) == "" {
		return nil, nil
	}
	timeout := 30 * time.Second
	if strings.TrimSpace(cfg.Susanoo.Timeout) != "" {
		d, err := time.ParseDuration(cfg.Susanoo.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid susanoo.timeout: %w", err)
		}
		timeout = d
	}
	gen, err := imagegen.NewSusanoo(imagegen.SusanooConfig{
		BaseURL:     cfg.Susanoo.BaseURL,
		APIKey:      cfg.Susanoo.APIKey,
		Model:       cfg.Susanoo.Model,
		AspectRatio: cfg.Susanoo.AspectRatio,
		Timeout:     timeout,
		WebPQuality: cfg.Susanoo.WebPQuality,
	})
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, nil
	}
	return gen, nil
}
