package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rsscollect/pkg/collector/mocks"
	"github.com/umputun/rsscollect/pkg/domain"
	"github.com/umputun/rsscollect/pkg/feed"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func ago(d time.Duration) *time.Time {
	ts := testNow.Add(-d)
	return &ts
}

func activeFeed(id int64, url string) *domain.Feed {
	return &domain.Feed{ID: id, Name: fmt.Sprintf("feed-%d", id), URL: url, IsActive: true,
		Status: domain.FeedStatusActive, CollectIntervalMinutes: 60}
}

// feedStoreRecorder returns a feed store mock recording collect updates by feed id
func feedStoreRecorder(feeds []*domain.Feed) (*mocks.FeedStoreMock, func() map[int64]domain.CollectUpdate) {
	var mu sync.Mutex
	updates := map[int64]domain.CollectUpdate{}
	store := &mocks.FeedStoreMock{
		GetFeedsFunc: func(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
			return feeds, nil
		},
		UpdateCollectResultFunc: func(ctx context.Context, id int64, upd domain.CollectUpdate) error {
			mu.Lock()
			defer mu.Unlock()
			updates[id] = upd
			return nil
		},
	}
	return store, func() map[int64]domain.CollectUpdate {
		mu.Lock()
		defer mu.Unlock()
		res := make(map[int64]domain.CollectUpdate, len(updates))
		for k, v := range updates {
			res[k] = v
		}
		return res
	}
}

// candidatesParser returns parser mock producing n candidates per feed
func candidatesParser(n int) *mocks.ParserMock {
	return &mocks.ParserMock{
		ParseFunc: func(data []byte, feedID int64) (*feed.ParseResult, error) {
			cands := make([]domain.Candidate, n)
			for i := range cands {
				cands[i] = domain.Candidate{FeedID: feedID, Title: fmt.Sprintf("item %d", i),
					Link: fmt.Sprintf("https://example.com/%d/%d", feedID, i)}
			}
			return feed.NewParseResult("feed", cands, nil), nil
		},
	}
}

func createAllItems() *mocks.ItemStoreMock {
	return &mocks.ItemStoreMock{
		SaveOrUpdateFunc: func(ctx context.Context, c domain.Candidate) (bool, error) { return true, nil },
	}
}

func TestCollector_CollectFeedsIsolatesFailures(t *testing.T) {
	feeds := []*domain.Feed{
		activeFeed(1, "https://one.example.com/rss"),
		activeFeed(2, "https://two.example.com/rss"),
		activeFeed(3, "https://three.example.com/rss"),
	}
	store, updates := feedStoreRecorder(feeds)
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			if url == "https://two.example.com/rss" {
				return nil, &feed.TransportError{URL: url, Err: errors.New("dial tcp: connection refused")}
			}
			return []byte("<rss/>"), nil
		},
	}

	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher,
		Parser: candidatesParser(2), MaxWorkers: 3, Clock: fixedClock})

	res := c.CollectFeeds(context.Background(), feeds, false)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 1, res.FailedCount)
	require.Len(t, res.Details, 3)

	assert.Equal(t, int64(1), res.Details[0].FeedID, "details keep input order")
	assert.True(t, res.Details[0].Success)
	assert.Equal(t, 2, res.Details[0].ItemsSaved)

	assert.Equal(t, int64(2), res.Details[1].FeedID)
	assert.False(t, res.Details[1].Success)
	assert.Equal(t, "HTTP transport error: dial tcp: connection refused", res.Details[1].Error)
	assert.Equal(t, domain.ErrKindTransport, res.Details[1].Kind)

	assert.Equal(t, int64(3), res.Details[2].FeedID)
	assert.True(t, res.Details[2].Success)

	upd := updates()
	require.Len(t, upd, 3)
	assert.Equal(t, domain.CollectUpdate{Status: domain.FeedStatusActive, LastCollectTime: testNow, ItemsAdded: 2}, upd[1])
	assert.Equal(t, domain.CollectUpdate{Status: domain.FeedStatusError, LastError: "HTTP transport error: dial tcp: connection refused",
		LastCollectTime: testNow}, upd[2])
	assert.Equal(t, domain.FeedStatusActive, upd[3].Status)
}

func TestCollector_CollectDueFeeds(t *testing.T) {
	due := activeFeed(1, "https://due.example.com")
	due.LastCollectTime = ago(90 * time.Minute)
	notDue := activeFeed(2, "https://notdue.example.com")
	notDue.LastCollectTime = ago(30 * time.Minute)
	never := activeFeed(3, "https://never.example.com")
	errored := activeFeed(4, "https://error.example.com")
	errored.Status = domain.FeedStatusError

	store, updates := feedStoreRecorder([]*domain.Feed{due, notDue, never, errored})
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher,
		Parser: candidatesParser(1), Clock: fixedClock})

	res, err := c.CollectDueFeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 0, res.FailedCount)
	require.Len(t, res.Details, 2)
	assert.Equal(t, int64(1), res.Details[0].FeedID)
	assert.Equal(t, int64(3), res.Details[1].FeedID)

	require.Len(t, store.GetFeedsCalls(), 1)
	assert.True(t, store.GetFeedsCalls()[0].ActiveOnly)
	assert.Len(t, fetcher.FetchCalls(), 2)

	upd := updates()
	assert.Len(t, upd, 2)
	_, touched := upd[2]
	assert.False(t, touched, "not due feed untouched")
	_, touched = upd[4]
	assert.False(t, touched, "error feed untouched")
}

func TestCollector_CollectDueFeedsNothingDue(t *testing.T) {
	f := activeFeed(1, "https://example.com")
	f.LastCollectTime = ago(time.Minute)
	store, _ := feedStoreRecorder([]*domain.Feed{f})
	fetcher := &mocks.FetcherMock{}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher, Parser: candidatesParser(0), Clock: fixedClock})

	res, err := c.CollectDueFeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
	assert.Empty(t, res.Details)
	assert.Empty(t, fetcher.FetchCalls())
}

func TestCollector_CollectDueFeedsStoreError(t *testing.T) {
	store := &mocks.FeedStoreMock{
		GetFeedsFunc: func(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
			return nil, errors.New("db is gone")
		},
	}
	c := NewCollector(Config{FeedStore: store, Clock: fixedClock})
	_, err := c.CollectDueFeeds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is gone")
}

func TestCollector_CollectFeed(t *testing.T) {
	f := activeFeed(1, "https://example.com")
	f.LastCollectTime = ago(10 * time.Minute)
	store, updates := feedStoreRecorder(nil)
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher, Parser: candidatesParser(3), Clock: fixedClock})

	t.Run("not due is skipped", func(t *testing.T) {
		res := c.CollectFeed(context.Background(), f)
		assert.True(t, res.Skipped)
		assert.False(t, res.Success)
		assert.Equal(t, "skipped", res.Status())
		assert.Empty(t, fetcher.FetchCalls())
		assert.Empty(t, updates())
	})

	t.Run("forced", func(t *testing.T) {
		res := c.ForceCollectFeed(context.Background(), f)
		assert.True(t, res.Success)
		assert.Equal(t, 3, res.ItemsSaved)
		assert.Len(t, fetcher.FetchCalls(), 1)
		assert.Equal(t, 3, updates()[1].ItemsAdded)
	})

	t.Run("due", func(t *testing.T) {
		f2 := activeFeed(2, "https://example.com/2")
		res := c.CollectFeed(context.Background(), f2)
		assert.True(t, res.Success)
		assert.Equal(t, int64(2), res.FeedID)
	})

	t.Run("forced disabled feed", func(t *testing.T) {
		f3 := activeFeed(3, "https://example.com/3")
		f3.Status, f3.IsActive = domain.FeedStatusDisabled, false
		assert.True(t, c.CollectFeed(context.Background(), f3).Skipped)
		assert.True(t, c.ForceCollectFeed(context.Background(), f3).Success)
	})

	t.Run("nil feed", func(t *testing.T) {
		res := c.ForceCollectFeed(context.Background(), nil)
		assert.False(t, res.Success)
		assert.Equal(t, domain.ErrKindInternal, res.Kind)
	})
}

func TestCollector_FailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		fetchErr error
		parseErr error
		wantKind domain.ErrorKind
		wantMsg  string
	}{
		{name: "http status", fetchErr: &feed.HTTPStatusError{StatusCode: 503}, wantKind: domain.ErrKindHTTPStatus,
			wantMsg: "HTTP request failed with status 503"},
		{name: "body too large", fetchErr: &feed.BodyTooLargeError{Limit: 1024}, wantKind: domain.ErrKindTooLarge,
			wantMsg: "response body exceeds 1024 bytes"},
		{name: "empty content", fetchErr: feed.ErrEmptyContent, wantKind: domain.ErrKindEmptyContent,
			wantMsg: "empty RSS content received"},
		{name: "malformed xml", parseErr: &feed.MalformedXMLError{Err: errors.New("unexpected EOF")},
			wantKind: domain.ErrKindMalformedXML, wantMsg: "malformed feed xml: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := activeFeed(1, "https://example.com")
			store, updates := feedStoreRecorder(nil)
			fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				if tt.fetchErr != nil {
					return nil, tt.fetchErr
				}
				return []byte("garbage"), nil
			}}
			parser := &mocks.ParserMock{ParseFunc: func(data []byte, feedID int64) (*feed.ParseResult, error) {
				if tt.parseErr != nil {
					return nil, tt.parseErr
				}
				return feed.NewParseResult("", nil, nil), nil
			}}
			items := &mocks.ItemStoreMock{}
			c := NewCollector(Config{FeedStore: store, ItemStore: items, Fetcher: fetcher, Parser: parser, Clock: fixedClock})

			res := c.CollectFeed(context.Background(), f)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantKind, res.Kind)
			assert.Equal(t, tt.wantMsg, res.Error)
			assert.Empty(t, items.SaveOrUpdateCalls())

			upd := updates()[1]
			assert.Equal(t, domain.FeedStatusError, upd.Status)
			assert.Equal(t, tt.wantMsg, upd.LastError)
			assert.Equal(t, testNow, upd.LastCollectTime)
			assert.Zero(t, upd.ItemsAdded)
		})
	}
}

func TestCollector_ItemErrorsSkipped(t *testing.T) {
	f := activeFeed(1, "https://example.com")
	store, updates := feedStoreRecorder(nil)
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	items := &mocks.ItemStoreMock{
		SaveOrUpdateFunc: func(ctx context.Context, c domain.Candidate) (bool, error) {
			switch c.Link {
			case "https://example.com/1/0":
				return false, errors.New("disk full")
			case "https://example.com/1/1":
				return false, nil // existing item updated
			default:
				return true, nil
			}
		},
	}
	c := NewCollector(Config{FeedStore: store, ItemStore: items, Fetcher: fetcher, Parser: candidatesParser(4), Clock: fixedClock})

	res := c.CollectFeed(context.Background(), f)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.ItemsSaved)
	assert.Len(t, items.SaveOrUpdateCalls(), 4, "failed item doesn't stop the others")
	assert.Equal(t, 2, updates()[1].ItemsAdded)
	assert.Equal(t, domain.FeedStatusActive, updates()[1].Status)
}

func TestCollector_PanicRecovered(t *testing.T) {
	feeds := []*domain.Feed{activeFeed(1, "https://one.example.com"), activeFeed(2, "https://two.example.com")}
	store, updates := feedStoreRecorder(feeds)
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	parser := &mocks.ParserMock{ParseFunc: func(data []byte, feedID int64) (*feed.ParseResult, error) {
		if feedID == 1 {
			panic("boom")
		}
		return feed.NewParseResult("", []domain.Candidate{{FeedID: feedID, Title: "t", Link: "https://x/1"}}, nil), nil
	}}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher, Parser: parser, Clock: fixedClock})

	res := c.CollectFeeds(context.Background(), feeds, false)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.FailedCount)
	assert.Equal(t, domain.ErrKindInternal, res.Details[0].Kind)
	assert.Contains(t, res.Details[0].Error, "boom")
	assert.Contains(t, res.Details[0].Error, "parsing")
	assert.Equal(t, domain.FeedStatusError, updates()[1].Status)
	assert.Equal(t, domain.FeedStatusActive, updates()[2].Status)
}

func TestCollector_StatusUpdateFailureIgnored(t *testing.T) {
	store := &mocks.FeedStoreMock{
		UpdateCollectResultFunc: func(ctx context.Context, id int64, upd domain.CollectUpdate) error {
			return errors.New("database is locked")
		},
	}
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher, Parser: candidatesParser(1), Clock: fixedClock})

	res := c.CollectFeed(context.Background(), activeFeed(1, "https://example.com"))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ItemsSaved)
	assert.Len(t, store.UpdateCollectResultCalls(), 1)
}

func TestCollector_WorkerLimit(t *testing.T) {
	feeds := make([]*domain.Feed, 12)
	for i := range feeds {
		feeds[i] = activeFeed(int64(i+1), fmt.Sprintf("https://example.com/%d", i))
	}
	store, _ := feedStoreRecorder(feeds)

	var inFlight, maxInFlight int32
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			prev := atomic.LoadInt32(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return []byte("<rss/>"), nil
	}}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher, Parser: candidatesParser(1),
		MaxWorkers: 3, Clock: fixedClock})

	res := c.CollectFeeds(context.Background(), feeds, true)
	assert.Equal(t, 12, res.SuccessCount)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(3))
	assert.Greater(t, atomic.LoadInt32(&maxInFlight), int32(1), "feeds collected concurrently")
}

func TestCollector_CanceledContext(t *testing.T) {
	feeds := []*domain.Feed{activeFeed(1, "https://example.com/1"), activeFeed(2, "https://example.com/2")}
	store, updates := feedStoreRecorder(feeds)
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	c := NewCollector(Config{FeedStore: store, ItemStore: createAllItems(), Fetcher: fetcher, Parser: candidatesParser(1), Clock: fixedClock})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := c.CollectFeeds(ctx, feeds, true)
	assert.Equal(t, 0, res.Total())
	assert.Empty(t, fetcher.FetchCalls())
	assert.Empty(t, updates())
}

func TestCollector_CanceledDuringSaveRecordsResult(t *testing.T) {
	feeds := []*domain.Feed{activeFeed(1, "https://example.com/1")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var recordCtxErr error
	store := &mocks.FeedStoreMock{
		UpdateCollectResultFunc: func(ctx context.Context, id int64, upd domain.CollectUpdate) error {
			recordCtxErr = ctx.Err()
			return nil
		},
	}
	items := &mocks.ItemStoreMock{
		SaveOrUpdateFunc: func(ctx context.Context, c domain.Candidate) (bool, error) {
			cancel() // shutdown arrives right after the first item is committed
			return true, nil
		},
	}
	fetcher := &mocks.FetcherMock{FetchFunc: func(ctx context.Context, url string) ([]byte, error) { return []byte("<rss/>"), nil }}
	c := NewCollector(Config{FeedStore: store, ItemStore: items, Fetcher: fetcher, Parser: candidatesParser(3), Clock: fixedClock})

	res := c.CollectFeeds(ctx, feeds, true)
	require.Equal(t, 1, res.Total())
	assert.Equal(t, 1, res.Details[0].ItemsSaved)
	assert.Len(t, items.SaveOrUpdateCalls(), 1, "no saves after cancellation")

	require.Len(t, store.UpdateCollectResultCalls(), 1)
	upd := store.UpdateCollectResultCalls()[0].Upd
	assert.Equal(t, 1, upd.ItemsAdded)
	assert.Equal(t, domain.FeedStatusActive, upd.Status)
	assert.Equal(t, testNow, upd.LastCollectTime)
	assert.NoError(t, recordCtxErr, "outcome written with a live context")
}

func TestCollector_Statistics(t *testing.T) {
	store := &mocks.FeedStoreMock{
		GetStatisticsFunc: func(ctx context.Context) (domain.Statistics, error) {
			return domain.Statistics{TotalFeeds: 3, ActiveFeeds: 2, ErrorFeeds: 1, TotalItems: 42}, nil
		},
	}
	c := NewCollector(Config{FeedStore: store})

	stats, err := c.GetCollectStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{TotalFeeds: 3, ActiveFeeds: 2, ErrorFeeds: 1, TotalItems: 42}, stats)

	store.GetStatisticsFunc = func(ctx context.Context) (domain.Statistics, error) {
		return domain.Statistics{}, errors.New("failed")
	}
	_, err = c.GetCollectStatistics(context.Background())
	require.Error(t, err)

	f := activeFeed(5, "https://example.com")
	f.ItemsCount, f.LastError, f.LastCollectTime = 17, "oops", ago(time.Hour)
	fs := c.GetFeedStatistics(f)
	assert.Equal(t, domain.FeedStatistics{FeedID: 5, FeedName: "feed-5", Status: domain.FeedStatusActive, ItemsCount: 17,
		LastCollectTime: f.LastCollectTime, CollectIntervalMinutes: 60, LastError: "oops"}, fs)
}
