package episodes

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/killallgit/podradio/internal/models"
)

// ParsePubDate accepts RFC3339 first and falls back to dateparse for RSS
// style and other loosely formatted dates
func ParsePubDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsEligible reports whether episode satisfies preference. Under "new" the
// publication date must be strictly after now minus cutoffDays; an
// unparseable date is never new.
func IsEligible(episode models.Episode, preference models.TimePreference, now time.Time, cutoffDays int) bool {
	if preference != models.TimePreferenceNew {
		return true
	}

	published, ok := ParsePubDate(episode.PubDate)
	if !ok {
		return false
	}

	cutoff := now.AddDate(0, 0, -cutoffDays)
	return published.After(cutoff)
}
