package models

import "fmt"

// TimePreference selects how recent returned episodes must be
type TimePreference string

const (
	// TimePreferenceAll accepts every episode regardless of publication date
	TimePreferenceAll TimePreference = "all"
	// TimePreferenceNew accepts only episodes inside the recency window
	TimePreferenceNew TimePreference = "new"
)

// ParseTimePreference converts a query/flag value into a TimePreference.
// An empty value means "all".
func ParseTimePreference(value string) (TimePreference, error) {
	switch TimePreference(value) {
	case "", TimePreferenceAll:
		return TimePreferenceAll, nil
	case TimePreferenceNew:
		return TimePreferenceNew, nil
	default:
		return "", fmt.Errorf("unknown time preference %q (want %q or %q)", value, TimePreferenceAll, TimePreferenceNew)
	}
}

// Episode is the canonical playable record returned to callers.
// Instances are built per request and never persisted.
type Episode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PodcastName string `json:"podcastName"`
	AudioURL    string `json:"audioUrl"`
	CoverImage  string `json:"coverImage,omitempty"`
	Duration    string `json:"duration,omitempty"`
	PubDate     string `json:"pubDate"` // ISO-8601 when the source date was parseable
	Link        string `json:"link,omitempty"`
}

// FeedDescriptor names one RSS/Atom feed in the registry
type FeedDescriptor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SingleDescriptor is a hand-curated standalone episode
type SingleDescriptor struct {
	Title       string `json:"title"`
	PodcastName string `json:"podcastName"`
	AudioURL    string `json:"audioUrl"`
	CoverImage  string `json:"coverImage,omitempty"`
	Duration    string `json:"duration,omitempty"`
	PubDate     string `json:"pubDate"`
}
