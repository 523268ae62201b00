package cmd

import (
	"fmt"
	"strings"

	"pjuskeby-rumors/internal/config"
	"pjuskeby-rumors/internal/redisclient"
	"pjuskeby-rumors/internal/storage"
)

// openStore builds the configured interaction store. The returned closer
// releases the backing connection and is safe to defer.
func openStore(cfg config.Config) (storage.Store, func() error, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case "redis":
		rdb := redisclient.New(cfg.Redis)
		return storage.NewRedisStore(rdb), rdb.Close, nil
	case "file":
		fs, err := storage.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q (want redis or file)", cfg.Store.Driver)
	}
}
