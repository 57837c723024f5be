package episodes

import (
	"context"

	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/registry"
)

// EpisodeSampler picks a randomized set of playable episodes
type EpisodeSampler interface {
	SelectEpisodes(ctx context.Context, count int, preference models.TimePreference, lang registry.Language) []models.Episode
}

// Random is the randomness source used by the selection policy.
// Float64 returns a value in [0, 1); IntN returns a value in [0, n).
type Random interface {
	Float64() float64
	IntN(n int) int
}
