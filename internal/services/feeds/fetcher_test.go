package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const podcastRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Test Podcast</title>
    <image><url>https://example.com/channel.jpg</url></image>
    <itunes:image href="https://example.com/itunes-channel.jpg"/>
    <item>
      <title>Episode 1</title>
      <guid>ep-1</guid>
      <link>https://example.com/ep1</link>
      <enclosure url="https://example.com/ep1.mp3" type="audio/mpeg" length="1234"/>
      <itunes:image href="https://example.com/ep1.jpg"/>
      <itunes:duration>42:00</itunes:duration>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Episode 2</title>
      <link>https://example.com/ep2</link>
      <enclosure url="https://example.com/ep2.mp3" type="audio/mpeg" length="1234"/>
      <pubDate>sometime last week</pubDate>
    </item>
    <item>
      <title>Show notes only</title>
      <link>https://example.com/notes</link>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := newFeedServer(t, http.StatusOK, podcastRSS)

	doc, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "Test Podcast", doc.Title)
	assert.Equal(t, "https://example.com/channel.jpg", doc.Image)
	require.Len(t, doc.Items, 3)

	first := doc.Items[0]
	assert.Equal(t, "ep-1", first.GUID)
	assert.Equal(t, "Episode 1", first.Title)
	assert.Equal(t, "https://example.com/ep1.mp3", first.AudioURL)
	assert.Equal(t, "https://example.com/ep1.jpg", first.Image)
	assert.Equal(t, "42:00", first.Duration)
	require.NotNil(t, first.PublishedParsed)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), first.PublishedParsed.UTC())

	second := doc.Items[1]
	assert.Empty(t, second.GUID)
	assert.Equal(t, "https://example.com/ep2", second.Link)
	assert.Equal(t, "sometime last week", second.Published)
	assert.Nil(t, second.PublishedParsed)

	assert.Empty(t, doc.Items[2].AudioURL)
}

func TestHTTPFetcher_SendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(podcastRSS))
	}))
	defer server.Close()

	_, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, DefaultAccept, gotAccept)

	_, err = NewFetcher(WithUserAgent("podradio-test")).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "podradio-test", gotUA)
}

func TestHTTPFetcher_Errors(t *testing.T) {
	notFound := newFeedServer(t, http.StatusNotFound, "missing")
	garbage := newFeedServer(t, http.StatusOK, "this is not a feed")

	tests := []struct {
		name       string
		url        string
		wantStage  string
		wantStatus int
	}{
		{name: "non-2xx status", url: notFound.URL, wantStage: StageStatus, wantStatus: http.StatusNotFound},
		{name: "malformed document", url: garbage.URL, wantStage: StageParse},
		{name: "unsupported scheme", url: "ftp://example.com/feed.xml", wantStage: StageRequest},
		{name: "unparseable url", url: "://nope", wantStage: StageRequest},
		{name: "connection refused", url: "http://127.0.0.1:1/feed.xml", wantStage: StageRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewFetcher(WithTimeout(2*time.Second)).Fetch(context.Background(), tt.url)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, IsFetchError(err))
			assert.ErrorIs(t, err, ErrFetchFailed)

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, tt.url, fetchErr.URL)
			assert.Equal(t, tt.wantStage, fetchErr.Stage)
			assert.Equal(t, tt.wantStatus, fetchErr.StatusCode)
		})
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	start := time.Now()
	_, err := NewFetcher(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	server := newFeedServer(t, http.StatusOK, podcastRSS)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher().Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher_AtomEnclosure(t *testing.T) {
	atom := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Cast</title>
  <id>urn:atom-cast</id>
  <updated>2024-02-01T10:00:00Z</updated>
  <entry>
    <title>Atom Episode</title>
    <id>urn:atom-cast:1</id>
    <updated>2024-02-01T10:00:00Z</updated>
    <link rel="alternate" href="https://example.com/atom/1"/>
    <link rel="enclosure" type="audio/mpeg" href="https://example.com/atom/1.mp3"/>
  </entry>
</feed>`
	server := newFeedServer(t, http.StatusOK, atom)

	doc, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Atom Cast", doc.Title)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "urn:atom-cast:1", doc.Items[0].GUID)
	assert.Equal(t, "https://example.com/atom/1.mp3", doc.Items[0].AudioURL)
	assert.NotNil(t, doc.Items[0].PublishedParsed)
}

func TestEnclosureURL(t *testing.T) {
	tests := []struct {
		name       string
		enclosures []*gofeed.Enclosure
		want       string
	}{
		{name: "none", enclosures: nil, want: ""},
		{
			name: "audio preferred over earlier non-audio",
			enclosures: []*gofeed.Enclosure{
				{URL: "https://example.com/cover.jpg", Type: "image/jpeg"},
				{URL: "https://example.com/ep.mp3", Type: "audio/mpeg"},
			},
			want: "https://example.com/ep.mp3",
		},
		{
			name: "first with url when no audio type",
			enclosures: []*gofeed.Enclosure{
				nil,
				{URL: ""},
				{URL: "https://example.com/ep.bin"},
				{URL: "https://example.com/other.bin"},
			},
			want: "https://example.com/ep.bin",
		},
		{
			name:       "type matching is case insensitive",
			enclosures: []*gofeed.Enclosure{{URL: "https://example.com/a.m4a", Type: "Audio/MP4"}},
			want:       "https://example.com/a.m4a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enclosureURL(tt.enclosures))
		})
	}
}

func TestDocumentFromFeed_ImageFallbacks(t *testing.T) {
	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	feed := &gofeed.Feed{
		Title: "Fallbacks",
		Items: []*gofeed.Item{
			nil,
			{
				Title:           "with item image",
				Image:           &gofeed.Image{URL: "https://example.com/item.jpg"},
				PublishedParsed: &published,
				Published:       "2024-03-01",
			},
		},
	}

	doc := documentFromFeed(feed)
	assert.Empty(t, doc.Image)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "https://example.com/item.jpg", doc.Items[0].Image)
	require.NotNil(t, doc.Items[0].PublishedParsed)
	assert.True(t, published.Equal(*doc.Items[0].PublishedParsed))

	published = published.Add(time.Hour)
	assert.False(t, published.Equal(*doc.Items[0].PublishedParsed), "parsed time must be copied")
}
