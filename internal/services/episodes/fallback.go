package episodes

import (
	"time"

	"github.com/killallgit/podradio/internal/models"
)

const FallbackEpisodeID = "fallback-1"

// FallbackEpisode is returned when a sampling call finds nothing playable
func FallbackEpisode(now time.Time) models.Episode {
	return models.Episode{
		ID:          FallbackEpisodeID,
		Title:       "Bitcoin: A Peer-to-Peer Electronic Cash System",
		PodcastName: "Satoshi Nakamoto",
		AudioURL:    "https://www.bitcoin.kn/2015/02/btck-134-2015-02-12/",
		CoverImage:  "https://upload.wikimedia.org/wikipedia/commons/4/46/Bitcoin.svg",
		Duration:    "10:00",
		PubDate:     now.UTC().Format(time.RFC3339),
	}
}
