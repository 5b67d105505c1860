package domain

import "time"

// field limits for items
const (
	MaxItemTitleLen       = 500
	MaxItemLinkLen        = 1000
	MaxItemDescriptionLen = 5000
	MaxItemContentLen     = 50000
	MaxItemGUIDLen        = 255
)

// Item represents a syndicated entry collected from a feed.
// Link is the dedupe key, FeedID is fixed once the item is stored.
type Item struct {
	ID          int64      `json:"id"`
	FeedID      int64      `json:"feed_id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	GUID        string     `json:"guid"`
	PublishTime *time.Time `json:"publish_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Candidate is an item parsed from a feed document, not stored yet
type Candidate struct {
	FeedID      int64
	Title       string
	Link        string
	GUID        string
	Description string
	Content     string
	PublishTime *time.Time
}
