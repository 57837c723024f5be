package cmd

import (
	"fmt"

	"github.com/killallgit/podradio/internal/database"
	"github.com/killallgit/podradio/internal/registry"
	"github.com/killallgit/podradio/internal/services/episodes"
	"github.com/killallgit/podradio/internal/services/feeds"
	"github.com/killallgit/podradio/pkg/config"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// openDatabase opens the configured SQLite database and applies migrations
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.InitializeWithMigrations(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// newRegistry builds the registry selected by registry.source. The returned
// database is nil for the files source; callers close it when non-nil.
func newRegistry(cfg *config.Config) (registry.Accessor, *database.DB, error) {
	switch cfg.Registry.Source {
	case config.RegistrySourceDatabase:
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return registry.NewDatabaseRegistry(db.DB), db, nil
	case config.RegistrySourceFiles, "":
		return registry.NewFileRegistry(cfg.Registry.ContentDir), nil, nil
	default:
		return nil, nil, apperrors.ConfigError("registry.source", fmt.Sprintf("unknown source %q", cfg.Registry.Source))
	}
}

// newSampler wires the feed fetcher and sampling engine from configuration
func newSampler(cfg *config.Config, reg registry.Accessor) *episodes.Sampler {
	fetcher := feeds.NewFetcher(
		feeds.WithTimeout(cfg.Sampling.FetchTimeout),
		feeds.WithUserAgent(cfg.Sampling.UserAgent),
		feeds.WithMaxBytes(cfg.Sampling.MaxFeedBytes),
	)

	return episodes.NewSampler(reg, fetcher,
		episodes.WithMaxAttempts(cfg.Sampling.MaxAttempts),
		episodes.WithMaxFeedsPerAttempt(cfg.Sampling.MaxFeedsPerAttempt),
		episodes.WithCutoffDays(cfg.Sampling.RecentDaysCutoff),
		episodes.WithFetchTimeout(cfg.Sampling.FetchTimeout),
	)
}
