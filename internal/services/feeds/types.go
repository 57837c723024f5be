package feeds

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Document is a parsed feed reduced to the fields the engine reads
type Document struct {
	Title string
	Image string
	Items []Item
}

// Item is one entry of a parsed feed
type Item struct {
	GUID            string
	Link            string
	Title           string
	AudioURL        string
	Image           string
	Duration        string
	Published       string
	PublishedParsed *time.Time
}

// documentFromFeed converts a gofeed result. Channel image wins over the
// iTunes image for the feed, the reverse holds for items.
func documentFromFeed(feed *gofeed.Feed) *Document {
	doc := &Document{
		Title: feed.Title,
		Items: make([]Item, 0, len(feed.Items)),
	}

	if feed.Image != nil && feed.Image.URL != "" {
		doc.Image = feed.Image.URL
	} else if feed.ITunesExt != nil {
		doc.Image = feed.ITunesExt.Image
	}

	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		doc.Items = append(doc.Items, itemFromFeed(it))
	}

	return doc
}

func itemFromFeed(it *gofeed.Item) Item {
	item := Item{
		GUID:      it.GUID,
		Link:      it.Link,
		Title:     it.Title,
		AudioURL:  enclosureURL(it.Enclosures),
		Published: it.Published,
	}

	if it.PublishedParsed != nil {
		t := *it.PublishedParsed
		item.PublishedParsed = &t
	} else if it.Published == "" && it.UpdatedParsed != nil {
		t := *it.UpdatedParsed
		item.PublishedParsed = &t
		item.Published = it.Updated
	}

	if it.ITunesExt != nil {
		item.Image = it.ITunesExt.Image
		item.Duration = it.ITunesExt.Duration
	}
	if item.Image == "" && it.Image != nil {
		item.Image = it.Image.URL
	}

	return item
}

// enclosureURL picks the first audio enclosure, else the first one with a URL
func enclosureURL(enclosures []*gofeed.Enclosure) string {
	first := ""
	for _, enc := range enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(enc.Type), "audio/") {
			return enc.URL
		}
		if first == "" {
			first = enc.URL
		}
	}
	return first
}
