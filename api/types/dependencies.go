package types

import (
	"github.com/killallgit/podradio/internal/database"
	"github.com/killallgit/podradio/internal/registry"
	"github.com/killallgit/podradio/internal/services/episodes"
	"github.com/killallgit/podradio/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Config   *config.Config
	DB       *database.DB
	Sampler  episodes.EpisodeSampler
	Registry registry.Accessor
	Build    BuildInfo
}

// BuildInfo carries the version stamped into the binary at link time
type BuildInfo struct {
	Version string
	Commit  string
}

// DefaultLanguage returns the configured fallback language
func (d *Dependencies) DefaultLanguage() registry.Language {
	if d == nil || d.Config == nil {
		return registry.DefaultLanguage
	}
	return registry.ResolveLanguage(d.Config.Registry.DefaultLanguage, registry.DefaultLanguage)
}

// CountLimits returns the default and maximum episode counts per request
func (d *Dependencies) CountLimits() (def, limit int) {
	def, limit = 3, 10
	if d == nil || d.Config == nil {
		return def, limit
	}
	if d.Config.Sampling.MaxCount > 0 {
		limit = d.Config.Sampling.MaxCount
	}
	if d.Config.Sampling.DefaultCount > 0 {
		def = min(d.Config.Sampling.DefaultCount, limit)
	}
	return def, limit
}
