package registry

import (
	"context"

	"github.com/killallgit/podradio/internal/models"
)

// Accessor yields the feed and singles registries for one language
type Accessor interface {
	GetFeeds(ctx context.Context, lang Language) ([]models.FeedDescriptor, error)
	GetSingles(ctx context.Context, lang Language) ([]models.SingleDescriptor, error)
}
