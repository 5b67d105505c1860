package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/rsscollect/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID                     int64      `db:"id"`
	Name                   string     `db:"name"`
	URL                    string     `db:"url"`
	Description            string     `db:"description"`
	Category               string     `db:"category"`
	IsActive               bool       `db:"is_active"`
	CollectIntervalMinutes int        `db:"collect_interval_minutes"`
	LastCollectTime        *time.Time `db:"last_collect_time"`
	Status                 string     `db:"status"`
	LastError              string     `db:"last_error"`
	ItemsCount             int        `db:"items_count"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// CreateFeed inserts a new feed and sets its ID and timestamps.
// Returns domain.ErrDuplicateURL if the url is already registered.
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	ts := now()
	if feed.Status == "" {
		feed.Status = domain.FeedStatusActive
	}
	if feed.CollectIntervalMinutes == 0 {
		feed.CollectIntervalMinutes = domain.DefaultCollectInterval
	}
	rec := &feedSQL{
		Name:                   feed.Name,
		URL:                    feed.URL,
		Description:            feed.Description,
		Category:               feed.Category,
		IsActive:               feed.IsActive,
		CollectIntervalMinutes: feed.CollectIntervalMinutes,
		Status:                 string(feed.Status),
		CreatedAt:              ts,
		UpdatedAt:              ts,
	}

	query := `
		INSERT INTO feeds (name, url, description, category, is_active, collect_interval_minutes,
			status, created_at, updated_at)
		VALUES (:name, :url, :description, :category, :is_active, :collect_interval_minutes,
			:status, :created_at, :updated_at)
	`
	var id int64
	err := withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create feed %s: %w", feed.URL, domain.ErrDuplicateURL)
		}
		return fmt.Errorf("create feed: %w", err)
	}

	feed.ID = id
	feed.CreatedAt, feed.UpdatedAt = ts, ts
	return nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var rec feedSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM feeds WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get feed %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get feed %d: %w", id, err)
	}
	return r.toDomainFeed(&rec), nil
}

// ExistsByURL checks if a feed with the url is registered, excludeID allows to ignore the feed being updated
func (r *FeedRepository) ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM feeds WHERE url = ? AND id != ?)", url, excludeID)
	if err != nil {
		return false, fmt.Errorf("check feed exists: %w", err)
	}
	return exists, nil
}

// GetFeeds retrieves feeds ordered by name, activeOnly limits the result to feeds with is_active set
func (r *FeedRepository) GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
	query := "SELECT * FROM feeds"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY name, id"

	var recs []feedSQL
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]*domain.Feed, len(recs))
	for i := range recs {
		feeds[i] = r.toDomainFeed(&recs[i])
	}
	return feeds, nil
}

// UpdateFeed updates registration fields and the active flag of the feed in a single statement.
// Status is reset to active or disabled only if the active flag changes, collection state is not touched.
func (r *FeedRepository) UpdateFeed(ctx context.Context, feed *domain.Feed) error {
	ts := now()
	status := domain.FeedStatusDisabled
	if feed.IsActive {
		status = domain.FeedStatusActive
	}
	query := `
		UPDATE feeds
		SET name = ?, url = ?, description = ?, category = ?, collect_interval_minutes = ?,
			status = CASE WHEN is_active = ? THEN status ELSE ? END,
			is_active = ?, updated_at = ?
		WHERE id = ?
	`
	err := r.execOne(ctx, query, feed.Name, feed.URL, feed.Description, feed.Category,
		feed.CollectIntervalMinutes, feed.IsActive, string(status), feed.IsActive, ts, feed.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update feed %d: %w", feed.ID, domain.ErrDuplicateURL)
		}
		return fmt.Errorf("update feed %d: %w", feed.ID, err)
	}
	feed.UpdatedAt = ts
	return nil
}

// SetFeedActive enables or disables the feed. Status is set to active or disabled accordingly.
func (r *FeedRepository) SetFeedActive(ctx context.Context, id int64, active bool) error {
	status := domain.FeedStatusDisabled
	if active {
		status = domain.FeedStatusActive
	}
	err := r.execOne(ctx, "UPDATE feeds SET is_active = ?, status = ?, updated_at = ? WHERE id = ?",
		active, string(status), now(), id)
	if err != nil {
		return fmt.Errorf("set feed %d active=%v: %w", id, active, err)
	}
	return nil
}

// DeleteFeed removes the feed and all its items
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err = tx.ExecContext(ctx, "DELETE FROM items WHERE feed_id = ?", id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrNotFound
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("delete feed %d: %w", id, err)
	}
	return nil
}

// UpdateCollectResult records the outcome of a collection attempt on a single feed row.
// Items counter is incremented in place, so concurrent updates of other feeds never interfere.
func (r *FeedRepository) UpdateCollectResult(ctx context.Context, id int64, upd domain.CollectUpdate) error {
	if !upd.Status.Valid() {
		return fmt.Errorf("update collect result of feed %d: invalid status %q", id, upd.Status)
	}
	lastError := upd.LastError
	if utf8.RuneCountInString(lastError) > domain.MaxFeedErrorLen {
		lastError = string([]rune(lastError)[:domain.MaxFeedErrorLen])
	}
	added := max(upd.ItemsAdded, 0)

	query := `
		UPDATE feeds
		SET status = ?, last_error = ?, last_collect_time = ?, items_count = items_count + ?, updated_at = ?
		WHERE id = ?
	`
	err := r.execOne(ctx, query, string(upd.Status), lastError, upd.LastCollectTime.UTC(), added, now(), id)
	if err != nil {
		return fmt.Errorf("update collect result for feed %d: %w", id, err)
	}
	return nil
}

// GetStatistics returns aggregated counters over all feeds
func (r *FeedRepository) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	var res struct {
		Total  int `db:"total"`
		Active int `db:"active"`
		Errors int `db:"errors"`
		Items  int `db:"items"`
	}
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) AS errors,
			COALESCE(SUM(items_count), 0) AS items
		FROM feeds
	`
	if err := r.db.GetContext(ctx, &res, query); err != nil {
		return domain.Statistics{}, fmt.Errorf("get feed statistics: %w", err)
	}
	return domain.Statistics{TotalFeeds: res.Total, ActiveFeeds: res.Active, ErrorFeeds: res.Errors, TotalItems: res.Items}, nil
}

// execOne runs a single-row update with retries, domain.ErrNotFound if no row matched
func (r *FeedRepository) execOne(ctx context.Context, query string, args ...any) error {
	return withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// toDomainFeed converts feedSQL to domain.Feed
func (r *FeedRepository) toDomainFeed(rec *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:                     rec.ID,
		Name:                   rec.Name,
		URL:                    rec.URL,
		Description:            rec.Description,
		Category:               rec.Category,
		IsActive:               rec.IsActive,
		CollectIntervalMinutes: rec.CollectIntervalMinutes,
		LastCollectTime:        rec.LastCollectTime,
		Status:                 domain.FeedStatus(rec.Status),
		LastError:              rec.LastError,
		ItemsCount:             rec.ItemsCount,
		CreatedAt:              rec.CreatedAt,
		UpdatedAt:              rec.UpdatedAt,
	}
}
