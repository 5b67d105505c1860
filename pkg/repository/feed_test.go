package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rsscollect/pkg/domain"
)

func TestFeedRepository_CreateAndGet(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	f := &domain.Feed{
		Name:        "Go Blog",
		URL:         "https://go.dev/blog/feed.atom",
		Description: "the go blog",
		Category:    "tech",
		IsActive:    true,
	}
	require.NoError(t, repos.Feed.CreateFeed(ctx, f))
	assert.NotZero(t, f.ID)
	assert.Equal(t, domain.DefaultCollectInterval, f.CollectIntervalMinutes, "default interval")
	assert.Equal(t, domain.FeedStatusActive, f.Status, "default status")
	assert.False(t, f.CreatedAt.IsZero())

	got, err := repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Blog", got.Name)
	assert.Equal(t, "https://go.dev/blog/feed.atom", got.URL)
	assert.Equal(t, "the go blog", got.Description)
	assert.Equal(t, "tech", got.Category)
	assert.True(t, got.IsActive)
	assert.Equal(t, 60, got.CollectIntervalMinutes)
	assert.Equal(t, domain.FeedStatusActive, got.Status)
	assert.Nil(t, got.LastCollectTime)
	assert.Zero(t, got.ItemsCount)

	t.Run("duplicate url", func(t *testing.T) {
		err := repos.Feed.CreateFeed(ctx, &domain.Feed{Name: "dup", URL: f.URL, IsActive: true})
		require.ErrorIs(t, err, domain.ErrDuplicateURL)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repos.Feed.GetFeed(ctx, 9999)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("exists by url", func(t *testing.T) {
		exists, err := repos.Feed.ExistsByURL(ctx, f.URL, 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repos.Feed.ExistsByURL(ctx, f.URL, f.ID)
		require.NoError(t, err)
		assert.False(t, exists, "feed itself excluded")

		exists, err = repos.Feed.ExistsByURL(ctx, "https://other.example.com", 0)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestFeedRepository_GetFeeds(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, f := range []*domain.Feed{
		{Name: "Charlie", URL: "https://c.example.com", IsActive: true},
		{Name: "Alpha", URL: "https://a.example.com", IsActive: true},
		{Name: "Bravo", URL: "https://b.example.com", IsActive: false, Status: domain.FeedStatusDisabled},
	} {
		require.NoError(t, repos.Feed.CreateFeed(ctx, f))
	}

	all, err := repos.Feed.GetFeeds(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha", all[0].Name)
	assert.Equal(t, "Bravo", all[1].Name)
	assert.Equal(t, "Charlie", all[2].Name)

	active, err := repos.Feed.GetFeeds(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Alpha", active[0].Name)
	assert.Equal(t, "Charlie", active[1].Name)
}

func TestFeedRepository_UpdateFeed(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	f := createTestFeed(t, repos, "https://example.com/1")
	other := createTestFeed(t, repos, "https://example.com/2")

	f.Name = "renamed"
	f.Category = "news"
	f.CollectIntervalMinutes = 15
	require.NoError(t, repos.Feed.UpdateFeed(ctx, f))

	got, err := repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "news", got.Category)
	assert.Equal(t, 15, got.CollectIntervalMinutes)

	other.URL = f.URL
	require.ErrorIs(t, repos.Feed.UpdateFeed(ctx, other), domain.ErrDuplicateURL)

	require.ErrorIs(t, repos.Feed.UpdateFeed(ctx, &domain.Feed{ID: 12345, Name: "x", URL: "https://x"}), domain.ErrNotFound)
}

func TestFeedRepository_UpdateFeedActiveFlag(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	f := createTestFeed(t, repos, "https://example.com/1")
	require.NoError(t, repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{
		Status: domain.FeedStatusError, LastError: "boom", LastCollectTime: time.Now()}))

	f.Name = "renamed"
	require.NoError(t, repos.Feed.UpdateFeed(ctx, f))
	got, err := repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.True(t, got.IsActive)
	assert.Equal(t, domain.FeedStatusError, got.Status, "status kept if active flag unchanged")
	assert.Equal(t, "boom", got.LastError)

	f.Name = "disabled"
	f.IsActive = false
	require.NoError(t, repos.Feed.UpdateFeed(ctx, f))
	got, err = repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "disabled", got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, domain.FeedStatusDisabled, got.Status)

	f.IsActive = true
	require.NoError(t, repos.Feed.UpdateFeed(ctx, f))
	got, err = repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, domain.FeedStatusActive, got.Status)

	t.Run("failed update changes nothing", func(t *testing.T) {
		other := createTestFeed(t, repos, "https://example.com/2")
		other.URL = f.URL
		other.IsActive = false
		require.ErrorIs(t, repos.Feed.UpdateFeed(ctx, other), domain.ErrDuplicateURL)
		got, err := repos.Feed.GetFeed(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/2", got.URL)
		assert.True(t, got.IsActive)
		assert.Equal(t, domain.FeedStatusActive, got.Status)
	})
}

func TestFeedRepository_SetFeedActive(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	f := createTestFeed(t, repos, "https://example.com/1")

	require.NoError(t, repos.Feed.SetFeedActive(ctx, f.ID, false))
	got, err := repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, domain.FeedStatusDisabled, got.Status)

	require.NoError(t, repos.Feed.SetFeedActive(ctx, f.ID, true))
	got, err = repos.Feed.GetFeed(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, domain.FeedStatusActive, got.Status)

	require.ErrorIs(t, repos.Feed.SetFeedActive(ctx, 999, true), domain.ErrNotFound)
}

func TestFeedRepository_DeleteFeedCascade(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	f1 := createTestFeed(t, repos, "https://example.com/1")
	f2 := createTestFeed(t, repos, "https://example.com/2")
	for i := range 3 {
		_, err := repos.Item.SaveOrUpdate(ctx, domain.Candidate{FeedID: f1.ID, Title: "t", Link: fmt.Sprintf("https://a/%d", i)})
		require.NoError(t, err)
	}
	_, err := repos.Item.SaveOrUpdate(ctx, domain.Candidate{FeedID: f2.ID, Title: "t", Link: "https://b/1"})
	require.NoError(t, err)

	require.NoError(t, repos.Feed.DeleteFeed(ctx, f1.ID))

	_, err = repos.Feed.GetFeed(ctx, f1.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	count, err := repos.Item.CountItems(ctx, f1.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repos.Item.CountItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other feed items kept")

	require.ErrorIs(t, repos.Feed.DeleteFeed(ctx, f1.ID), domain.ErrNotFound)
}

func TestFeedRepository_UpdateCollectResult(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	f := createTestFeed(t, repos, "https://example.com/1")
	collected := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success adds items", func(t *testing.T) {
		err := repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{
			Status: domain.FeedStatusActive, LastCollectTime: collected, ItemsAdded: 5})
		require.NoError(t, err)
		err = repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{
			Status: domain.FeedStatusActive, LastCollectTime: collected.Add(time.Hour), ItemsAdded: 2})
		require.NoError(t, err)

		got, err := repos.Feed.GetFeed(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.ItemsCount)
		require.NotNil(t, got.LastCollectTime)
		assert.True(t, collected.Add(time.Hour).Equal(*got.LastCollectTime))
		assert.Empty(t, got.LastError)
	})

	t.Run("failure keeps counter and truncates error", func(t *testing.T) {
		longErr := strings.Repeat("е", domain.MaxFeedErrorLen+50)
		err := repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{
			Status: domain.FeedStatusError, LastError: longErr, LastCollectTime: collected.Add(2 * time.Hour), ItemsAdded: -3})
		require.NoError(t, err)

		got, err := repos.Feed.GetFeed(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.FeedStatusError, got.Status)
		assert.Equal(t, 7, got.ItemsCount, "negative increment ignored")
		assert.Equal(t, domain.MaxFeedErrorLen, len([]rune(got.LastError)))
	})

	t.Run("success clears error", func(t *testing.T) {
		err := repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{
			Status: domain.FeedStatusActive, LastCollectTime: collected.Add(3 * time.Hour)})
		require.NoError(t, err)
		got, err := repos.Feed.GetFeed(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.FeedStatusActive, got.Status)
		assert.Empty(t, got.LastError)
	})

	t.Run("missing feed", func(t *testing.T) {
		err := repos.Feed.UpdateCollectResult(ctx, 999, domain.CollectUpdate{Status: domain.FeedStatusActive})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		before, err := repos.Feed.GetFeed(ctx, f.ID)
		require.NoError(t, err)
		err = repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{Status: "paused", ItemsAdded: 3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid status "paused"`)

		after, err := repos.Feed.GetFeed(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Status, after.Status)
		assert.Equal(t, before.ItemsCount, after.ItemsCount)
	})
}

func TestFeedRepository_UpdateCollectResultConcurrent(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	feeds := make([]*domain.Feed, 4)
	for i := range feeds {
		feeds[i] = createTestFeed(t, repos, fmt.Sprintf("https://example.com/%d", i))
	}

	var wg sync.WaitGroup
	for _, f := range feeds {
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repos.Feed.UpdateCollectResult(ctx, f.ID, domain.CollectUpdate{
					Status: domain.FeedStatusActive, LastCollectTime: time.Now(), ItemsAdded: 2})
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	for _, f := range feeds {
		got, err := repos.Feed.GetFeed(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.ItemsCount)
	}
}

func TestFeedRepository_GetStatistics(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stats, err := repos.Feed.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{}, stats)

	f1 := createTestFeed(t, repos, "https://example.com/1")
	f2 := createTestFeed(t, repos, "https://example.com/2")
	f3 := createTestFeed(t, repos, "https://example.com/3")
	ts := time.Now()
	require.NoError(t, repos.Feed.UpdateCollectResult(ctx, f1.ID, domain.CollectUpdate{Status: domain.FeedStatusActive, LastCollectTime: ts, ItemsAdded: 4}))
	require.NoError(t, repos.Feed.UpdateCollectResult(ctx, f2.ID, domain.CollectUpdate{Status: domain.FeedStatusError, LastError: "boom", LastCollectTime: ts}))
	require.NoError(t, repos.Feed.UpdateCollectResult(ctx, f3.ID, domain.CollectUpdate{Status: domain.FeedStatusActive, LastCollectTime: ts, ItemsAdded: 3}))
	require.NoError(t, repos.Feed.SetFeedActive(ctx, f3.ID, false))

	stats, err = repos.Feed.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{TotalFeeds: 3, ActiveFeeds: 1, ErrorFeeds: 1, TotalItems: 7}, stats)
}
