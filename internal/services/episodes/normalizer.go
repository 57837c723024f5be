package episodes

import (
	"regexp"
	"strings"
	"time"

	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/services/feeds"
)

const (
	UntitledEpisode = "Untitled Episode"
	UnknownPodcast  = "Unknown Podcast"
	SingleIDPrefix  = "single-"
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

func cleanText(s string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(s, " "))
}

// NormalizeFeedItem converts a feed entry into an Episode. Entries without an
// audio enclosure are not playable and report false.
func NormalizeFeedItem(item feeds.Item, feedName, feedCoverImage string, now time.Time) (models.Episode, bool) {
	if item.AudioURL == "" {
		return models.Episode{}, false
	}

	id := item.GUID
	if id == "" {
		id = item.Link
	}
	if id == "" {
		id = item.AudioURL
	}

	title := item.Title
	if title == "" {
		title = UntitledEpisode
	}
	if feedName == "" {
		feedName = UnknownPodcast
	}

	cover := item.Image
	if cover == "" {
		cover = feedCoverImage
	}

	var pubDate string
	switch {
	case item.PublishedParsed != nil:
		pubDate = item.PublishedParsed.UTC().Format(time.RFC3339)
	case strings.TrimSpace(item.Published) != "":
		pubDate = strings.TrimSpace(item.Published)
	default:
		pubDate = now.UTC().Format(time.RFC3339)
	}

	return models.Episode{
		ID:          id,
		Title:       cleanText(title),
		PodcastName: cleanText(feedName),
		AudioURL:    item.AudioURL,
		CoverImage:  cover,
		Duration:    item.Duration,
		PubDate:     pubDate,
		Link:        item.Link,
	}, true
}

// NormalizeSingle converts a curated single into an Episode
func NormalizeSingle(single models.SingleDescriptor, now time.Time) models.Episode {
	pubDate := single.PubDate
	if pubDate == "" {
		pubDate = now.UTC().Format(time.RFC3339)
	}

	return models.Episode{
		ID:          SingleIDPrefix + single.AudioURL,
		Title:       cleanText(single.Title),
		PodcastName: cleanText(single.PodcastName),
		AudioURL:    single.AudioURL,
		CoverImage:  single.CoverImage,
		Duration:    single.Duration,
		PubDate:     pubDate,
	}
}
