// Package collector implements feed collection: it picks feeds due for collection, fetches and parses them,
// stores items and records per-feed health. A failure of one feed never affects the others in the batch.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/rsscollect/pkg/domain"
	"github.com/umputun/rsscollect/pkg/feed"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser

// DefaultMaxWorkers is the number of feeds collected concurrently if not set
const DefaultMaxWorkers = 5

// FeedStore provides access to feeds and their collection state
type FeedStore interface {
	GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error)
	UpdateCollectResult(ctx context.Context, id int64, upd domain.CollectUpdate) error
	GetStatistics(ctx context.Context) (domain.Statistics, error)
}

// ItemStore persists collected items
type ItemStore interface {
	SaveOrUpdate(ctx context.Context, c domain.Candidate) (created bool, err error)
}

// Fetcher retrieves raw feed documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Parser converts raw feed documents to item candidates
type Parser interface {
	Parse(data []byte, feedID int64) (*feed.ParseResult, error)
}

// Collector runs the fetch, parse and save pipeline for feeds
type Collector struct {
	feeds      FeedStore
	items      ItemStore
	fetcher    Fetcher
	parser     Parser
	maxWorkers int
	now        func() time.Time
}

// Config holds collector dependencies and parameters
type Config struct {
	FeedStore  FeedStore
	ItemStore  ItemStore
	Fetcher    Fetcher
	Parser     Parser
	MaxWorkers int              // concurrent feeds, DefaultMaxWorkers if 0
	Clock      func() time.Time // time source for due checks and collect timestamps, time.Now if nil
}

// NewCollector makes a collector with the provided configuration
func NewCollector(cfg Config) *Collector {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Collector{
		feeds:      cfg.FeedStore,
		items:      cfg.ItemStore,
		fetcher:    cfg.Fetcher,
		parser:     cfg.Parser,
		maxWorkers: cfg.MaxWorkers,
		now:        cfg.Clock,
	}
}

// DueFeeds returns active feeds due for collection at the moment
func (c *Collector) DueFeeds(ctx context.Context) ([]*domain.Feed, error) {
	feeds, err := c.feeds.GetFeeds(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("get active feeds: %w", err)
	}
	now := c.now()
	due := make([]*domain.Feed, 0, len(feeds))
	for _, f := range feeds {
		if domain.IsDue(f, now) {
			due = append(due, f)
		}
	}
	return due, nil
}

// CollectDueFeeds collects all active feeds due for collection.
// Error is returned only if the list of feeds can't be loaded, feed failures are reported in the result.
func (c *Collector) CollectDueFeeds(ctx context.Context) (domain.BatchResult, error) {
	due, err := c.DueFeeds(ctx)
	if err != nil {
		return domain.BatchResult{}, err
	}
	if len(due) == 0 {
		lgr.Printf("[DEBUG] no feeds due for collection")
		return domain.BatchResult{Details: []domain.FeedResult{}}, nil
	}
	lgr.Printf("[INFO] collecting %d due feeds", len(due))
	return c.CollectFeeds(ctx, due, false), nil
}

// CollectFeed collects a single feed if it's due, otherwise returns a skipped result
func (c *Collector) CollectFeed(ctx context.Context, f *domain.Feed) domain.FeedResult {
	if !domain.IsDue(f, c.now()) {
		return skippedResult(f)
	}
	return c.collect(ctx, f)
}

// ForceCollectFeed collects a single feed regardless of its schedule and status
func (c *Collector) ForceCollectFeed(ctx context.Context, f *domain.Feed) domain.FeedResult {
	return c.collect(ctx, f)
}

// CollectFeeds collects the feeds concurrently, up to maxWorkers at a time. Without force, feeds not due
// are skipped and not reported. Details follow the order of the input feeds.
func (c *Collector) CollectFeeds(ctx context.Context, feeds []*domain.Feed, force bool) domain.BatchResult {
	now := c.now()
	results := make([]*domain.FeedResult, len(feeds))

	// feed goroutines never return errors, so a failed feed doesn't cancel the others
	var g errgroup.Group
	g.SetLimit(c.maxWorkers)
	for i, f := range feeds {
		if f == nil {
			continue
		}
		if !force && !domain.IsDue(f, now) {
			lgr.Printf("[DEBUG] skip feed %d (%s), not due", f.ID, f.Name)
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				lgr.Printf("[DEBUG] skip feed %d (%s), collection canceled", f.ID, f.Name)
				return nil
			}
			res := c.collect(ctx, f)
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	batch := domain.BatchResult{Details: make([]domain.FeedResult, 0, len(feeds))}
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Success {
			batch.SuccessCount++
		} else {
			batch.FailedCount++
		}
		batch.Details = append(batch.Details, *r)
	}

	lgr.Printf("[INFO] collected %d feeds: %d succeeded, %d failed", batch.Total(), batch.SuccessCount, batch.FailedCount)
	return batch
}

// GetCollectStatistics returns statistics over all feeds
func (c *Collector) GetCollectStatistics(ctx context.Context) (domain.Statistics, error) {
	stats, err := c.feeds.GetStatistics(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("get collect statistics: %w", err)
	}
	return stats, nil
}

// GetFeedStatistics returns collection summary of a single feed
func (c *Collector) GetFeedStatistics(f *domain.Feed) domain.FeedStatistics {
	return domain.FeedStatistics{
		FeedID:                 f.ID,
		FeedName:               f.Name,
		Status:                 f.Status,
		ItemsCount:             f.ItemsCount,
		LastCollectTime:        f.LastCollectTime,
		CollectIntervalMinutes: f.CollectIntervalMinutes,
		LastError:              f.LastError,
	}
}

// collect runs the pipeline for one feed and records the outcome in the feed store.
// A panic in any stage is reported as a feed failure.
func (c *Collector) collect(ctx context.Context, f *domain.Feed) (res domain.FeedResult) {
	if f == nil {
		return domain.FeedResult{Error: "no feed to collect", Kind: domain.ErrKindInternal}
	}
	state := domain.StateNotStarted
	setState := func(s domain.CollectState) {
		lgr.Printf("[DEBUG] feed %d (%s): %s -> %s", f.ID, f.Name, state, s)
		state = s
	}

	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] feed %d (%s): panic while %s: %v", f.ID, f.Name, state, r)
			res = c.failed(ctx, f, fmt.Errorf("internal error while %s: %v", state, r))
		}
	}()

	setState(domain.StateFetching)
	data, err := c.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch feed %d (%s) from %s: %v", f.ID, f.Name, f.URL, err)
		setState(domain.StateCompleted)
		return c.failed(ctx, f, err)
	}

	setState(domain.StateParsing)
	parsed, err := c.parser.Parse(data, f.ID)
	if err != nil {
		lgr.Printf("[WARN] failed to parse feed %d (%s): %v", f.ID, f.Name, err)
		setState(domain.StateCompleted)
		return c.failed(ctx, f, err)
	}
	for _, d := range parsed.Diagnostics {
		lgr.Printf("[WARN] feed %d (%s): %s", f.ID, f.Name, d)
	}

	setState(domain.StateSaving)
	saved := 0
	for cand := range parsed.All() {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] feed %d (%s): saving interrupted after %d new items: %v", f.ID, f.Name, saved, ctx.Err())
			break
		}
		created, err := c.items.SaveOrUpdate(ctx, cand)
		if err != nil {
			lgr.Printf("[WARN] feed %d (%s): failed to save item: %v", f.ID, f.Name, err)
			continue
		}
		if created {
			saved++
		}
	}

	c.record(ctx, f, domain.CollectUpdate{Status: domain.FeedStatusActive, LastCollectTime: c.now(), ItemsAdded: saved})
	setState(domain.StateCompleted)
	lgr.Printf("[INFO] feed %d (%s) collected, %d new items of %d", f.ID, f.Name, saved, parsed.Len())
	return domain.FeedResult{FeedID: f.ID, FeedName: f.Name, Success: true, ItemsSaved: saved}
}

// failed records a feed-level failure and makes the failed result
func (c *Collector) failed(ctx context.Context, f *domain.Feed, err error) domain.FeedResult {
	msg := err.Error()
	c.record(ctx, f, domain.CollectUpdate{Status: domain.FeedStatusError, LastError: msg, LastCollectTime: c.now()})
	return domain.FeedResult{FeedID: f.ID, FeedName: f.Name, Error: msg, Kind: feed.ErrorKind(err)}
}

// record stores collection outcome, failure to store is logged only.
// The outcome is written even if ctx was canceled, items saved before cancellation are already committed.
func (c *Collector) record(ctx context.Context, f *domain.Feed, upd domain.CollectUpdate) {
	if err := c.feeds.UpdateCollectResult(context.WithoutCancel(ctx), f.ID, upd); err != nil {
		lgr.Printf("[ERROR] failed to update collect status of feed %d (%s): %v", f.ID, f.Name, err)
	}
}

func skippedResult(f *domain.Feed) domain.FeedResult {
	if f == nil {
		return domain.FeedResult{Skipped: true}
	}
	return domain.FeedResult{FeedID: f.ID, FeedName: f.Name, Skipped: true}
}
