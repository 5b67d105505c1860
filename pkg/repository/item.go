package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/rsscollect/pkg/domain"
)

// ItemPersistError is returned when an item can't be saved
type ItemPersistError struct {
	Link string
	Err  error
}

func (e *ItemPersistError) Error() string {
	return fmt.Sprintf("persist item %s: %v", e.Link, e.Err)
}

func (e *ItemPersistError) Unwrap() error { return e.Err }

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          int64      `db:"id"`
	FeedID      int64      `db:"feed_id"`
	Title       string     `db:"title"`
	Link        string     `db:"link"`
	Description string     `db:"description"`
	Content     string     `db:"content"`
	GUID        string     `db:"guid"`
	PublishTime *time.Time `db:"publish_time"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// SaveOrUpdate stores the candidate keyed by its link. A new link is inserted and reported as created,
// an existing one gets title, description, content and guid refreshed; publish time is replaced only
// if the candidate has it. Feed ownership of a stored item never changes.
func (r *ItemRepository) SaveOrUpdate(ctx context.Context, c domain.Candidate) (created bool, err error) {
	if c.Link == "" || c.Title == "" {
		return false, &ItemPersistError{Link: c.Link, Err: errors.New("title and link are required")}
	}
	guid := c.GUID
	if guid == "" {
		guid = c.Link
	}
	var published any
	if c.PublishTime != nil {
		published = c.PublishTime.UTC()
	}

	ts := now()
	err = withRetry(ctx, func() error {
		created = false
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		res, err := tx.ExecContext(ctx, `
			INSERT INTO items (feed_id, title, link, description, content, guid, publish_time, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(link) DO NOTHING`,
			c.FeedID, c.Title, c.Link, c.Description, c.Content, guid, published, ts, ts)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if n == 0 {
			_, err = tx.ExecContext(ctx, `
				UPDATE items
				SET title = ?, description = ?, content = ?, guid = ?,
					publish_time = COALESCE(?, publish_time), updated_at = ?
				WHERE link = ?`,
				c.Title, c.Description, c.Content, guid, published, ts, c.Link)
			if err != nil {
				return fmt.Errorf("update: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		created = n > 0
		return nil
	})
	if err != nil {
		return false, &ItemPersistError{Link: c.Link, Err: err}
	}
	return created, nil
}

// getItemByLink retrieves an item by its link
func (r *ItemRepository) getItemByLink(ctx context.Context, link string) (*domain.Item, error) {
	var rec itemSQL
	if err := r.db.GetContext(ctx, &rec, "SELECT * FROM items WHERE link = ?", link); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get item by link: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item by link: %w", err)
	}
	return r.toDomainItem(&rec), nil
}

// GetItemsByFeed retrieves items of the feed, newest first
func (r *ItemRepository) GetItemsByFeed(ctx context.Context, feedID int64, limit, offset int) ([]*domain.Item, error) {
	query := `
		SELECT * FROM items
		WHERE feed_id = ?
		ORDER BY publish_time IS NULL, publish_time DESC, id DESC
		LIMIT ? OFFSET ?
	`
	var recs []itemSQL
	if err := r.db.SelectContext(ctx, &recs, query, feedID, limit, offset); err != nil {
		return nil, fmt.Errorf("get items for feed %d: %w", feedID, err)
	}
	return r.toDomainItems(recs), nil
}

// CountItems returns number of stored items of the feed, or of all feeds if feedID is 0
func (r *ItemRepository) CountItems(ctx context.Context, feedID int64) (int, error) {
	query, args := "SELECT COUNT(*) FROM items", []any{}
	if feedID != 0 {
		query += " WHERE feed_id = ?"
		args = append(args, feedID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// GetRecentItems returns items published within the last days, newest first, up to limit.
// Items without publish time are not included.
func (r *ItemRepository) GetRecentItems(ctx context.Context, days, limit int) ([]*domain.Item, error) {
	cutoff := now().Add(-time.Duration(days) * 24 * time.Hour)
	query := `
		SELECT * FROM items
		WHERE publish_time IS NOT NULL AND publish_time >= ?
		ORDER BY publish_time DESC, id DESC
		LIMIT ?
	`
	var recs []itemSQL
	if err := r.db.SelectContext(ctx, &recs, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("get recent items: %w", err)
	}
	return r.toDomainItems(recs), nil
}

func (r *ItemRepository) toDomainItems(recs []itemSQL) []*domain.Item {
	items := make([]*domain.Item, len(recs))
	for i := range recs {
		items[i] = r.toDomainItem(&recs[i])
	}
	return items
}

// toDomainItem converts itemSQL to domain.Item
func (r *ItemRepository) toDomainItem(rec *itemSQL) *domain.Item {
	return &domain.Item{
		ID:          rec.ID,
		FeedID:      rec.FeedID,
		Title:       rec.Title,
		Link:        rec.Link,
		Description: rec.Description,
		Content:     rec.Content,
		GUID:        rec.GUID,
		PublishTime: rec.PublishTime,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
