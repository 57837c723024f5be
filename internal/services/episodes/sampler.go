package episodes

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/killallgit/podradio/internal/logging"
	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/registry"
	"github.com/killallgit/podradio/internal/services/feeds"
)

const (
	DefaultMaxAttempts        = 3
	DefaultMaxFeedsPerAttempt = 5
	DefaultCutoffDays         = 30
	DefaultFetchTimeout       = 15 * time.Second
)

// Sampler implements EpisodeSampler over a registry and a feed fetcher.
// It holds no per-call state and is safe for concurrent use.
type Sampler struct {
	registry           registry.Accessor
	fetcher            feeds.Fetcher
	random             Random
	now                func() time.Time
	maxAttempts        int
	maxFeedsPerAttempt int
	cutoffDays         int
	fetchTimeout       time.Duration
	log                *log.Logger
}

// SamplerOption is a functional option for configuring the sampler
type SamplerOption func(*Sampler)

// WithRandom sets the randomness source
func WithRandom(r Random) SamplerOption {
	return func(s *Sampler) {
		if r != nil {
			s.random = r
		}
	}
}

// WithClock sets the time source used for recency checks and default dates
func WithClock(now func() time.Time) SamplerOption {
	return func(s *Sampler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxAttempts sets how many fetch-and-allocate rounds a call may run
func WithMaxAttempts(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithMaxFeedsPerAttempt sets how many feeds one attempt draws and fetches
func WithMaxFeedsPerAttempt(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.maxFeedsPerAttempt = n
		}
	}
}

// WithCutoffDays sets the recency window for the "new" preference
func WithCutoffDays(days int) SamplerOption {
	return func(s *Sampler) {
		if days > 0 {
			s.cutoffDays = days
		}
	}
}

// WithFetchTimeout bounds each individual feed fetch
func WithFetchTimeout(timeout time.Duration) SamplerOption {
	return func(s *Sampler) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithLogger replaces the sampler's component logger
func WithLogger(l *log.Logger) SamplerOption {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSampler creates a new sampler with optional configuration
func NewSampler(reg registry.Accessor, fetcher feeds.Fetcher, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		registry:           reg,
		fetcher:            fetcher,
		random:             DefaultRandom(),
		now:                time.Now,
		maxAttempts:        DefaultMaxAttempts,
		maxFeedsPerAttempt: DefaultMaxFeedsPerAttempt,
		cutoffDays:         DefaultCutoffDays,
		fetchTimeout:       DefaultFetchTimeout,
		log:                logging.WithPrefix("sampler"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CutoffDays returns the configured recency window
func (s *Sampler) CutoffDays() int {
	return s.cutoffDays
}

type feedPool struct {
	url      string
	episodes []models.Episode
}

// selection is the state of one SelectEpisodes call
type selection struct {
	count    int
	episodes []models.Episode
	selected map[string]struct{}
}

func (sel *selection) add(ep models.Episode) {
	sel.episodes = append(sel.episodes, ep)
	sel.selected[ep.ID] = struct{}{}
}

// SelectEpisodes returns up to count episodes mixing feed episodes and
// curated singles. Feed and registry failures are logged and skipped; when
// nothing playable is found the fallback episode is returned. A non-positive
// count yields an empty list.
func (s *Sampler) SelectEpisodes(ctx context.Context, count int, preference models.TimePreference, lang registry.Language) []models.Episode {
	if count <= 0 {
		return []models.Episode{}
	}

	now := s.now()

	feedList, err := s.registry.GetFeeds(ctx, lang)
	if err != nil {
		s.log.Warn("feed registry unavailable", "lang", lang, "err", err)
		feedList = nil
	}
	singles, err := s.registry.GetSingles(ctx, lang)
	if err != nil {
		s.log.Warn("singles registry unavailable", "lang", lang, "err", err)
		singles = nil
	}

	cache := feeds.NewCache(s.fetcher)
	sel := &selection{
		count:    count,
		episodes: make([]models.Episode, 0, count),
		selected: make(map[string]struct{}),
	}

	for attempt := 1; attempt <= s.maxAttempts && len(sel.episodes) < count; attempt++ {
		s.runAttempt(ctx, cache, sel, feedList, singles, preference, now)
		s.log.Debug("sampling attempt finished", "attempt", attempt, "selected", len(sel.episodes), "count", count)
	}

	if len(sel.episodes) == 0 {
		s.log.Info("no playable episodes found, using fallback", "lang", lang, "preference", preference)
		return []models.Episode{FallbackEpisode(now)}
	}

	return sel.episodes
}

func (s *Sampler) runAttempt(ctx context.Context, fetcher feeds.Fetcher, sel *selection, feedList []models.FeedDescriptor, singles []models.SingleDescriptor, preference models.TimePreference, now time.Time) {
	subset := sample(s.random, feedList, s.maxFeedsPerAttempt)
	docs := s.fetchAll(ctx, fetcher, subset)

	// ids already pooled this attempt, plus everything selected so far
	seen := make(map[string]struct{}, len(sel.selected))
	for id := range sel.selected {
		seen[id] = struct{}{}
	}

	var pools []*feedPool
	for i, feed := range subset {
		doc := docs[i]
		if doc == nil {
			continue
		}

		name := doc.Title
		if name == "" {
			name = feed.Name
		}

		pool := &feedPool{url: feed.URL}
		for _, item := range doc.Items {
			ep, ok := NormalizeFeedItem(item, name, doc.Image, now)
			if !ok || !IsEligible(ep, preference, now, s.cutoffDays) {
				continue
			}
			if _, dup := seen[ep.ID]; dup {
				continue
			}
			seen[ep.ID] = struct{}{}
			pool.episodes = append(pool.episodes, ep)
		}
		if len(pool.episodes) > 0 {
			pools = append(pools, pool)
		}
	}

	var eligibleSingles []models.Episode
	for _, single := range singles {
		ep := NormalizeSingle(single, now)
		if !IsEligible(ep, preference, now, s.cutoffDays) {
			continue
		}
		if _, dup := seen[ep.ID]; dup {
			continue
		}
		seen[ep.ID] = struct{}{}
		eligibleSingles = append(eligibleSingles, ep)
	}

	target := SinglesTarget(sel.count, len(pools), len(eligibleSingles), s.random)
	remaining := min(max(sel.count-target, 0), sel.count-len(sel.episodes))

	// one episode from each feed first
	for _, pool := range shuffled(s.random, pools) {
		if remaining <= 0 {
			break
		}
		var ep models.Episode
		ep, pool.episodes = popRandom(s.random, pool.episodes)
		sel.add(ep)
		remaining--
	}

	available := make([]*feedPool, 0, len(pools))
	for _, pool := range pools {
		if len(pool.episodes) > 0 {
			available = append(available, pool)
		}
	}
	for remaining > 0 && len(available) > 0 {
		k := s.random.IntN(len(available))
		pool := available[k]

		var ep models.Episode
		ep, pool.episodes = popRandom(s.random, pool.episodes)
		sel.add(ep)
		remaining--

		if len(pool.episodes) == 0 {
			available = append(available[:k], available[k+1:]...)
		}
	}

	take := min(len(eligibleSingles), sel.count-len(sel.episodes))
	if take > 0 {
		for _, ep := range shuffled(s.random, eligibleSingles)[:take] {
			sel.add(ep)
		}
	}
}

// fetchAll fetches every feed concurrently and waits for all of them. The
// result is aligned with feedList; failed feeds leave a nil entry.
func (s *Sampler) fetchAll(ctx context.Context, fetcher feeds.Fetcher, feedList []models.FeedDescriptor) []*feeds.Document {
	docs := make([]*feeds.Document, len(feedList))

	// a plain group: one failing feed must not cancel the others
	var g errgroup.Group
	g.SetLimit(s.maxFeedsPerAttempt)

	for i, feed := range feedList {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()

			doc, err := fetcher.Fetch(fetchCtx, feed.URL)
			if err != nil {
				s.log.Warn("feed fetch failed", "name", feed.Name, "url", feed.URL, "err", err)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}

	_ = g.Wait()
	return docs
}
