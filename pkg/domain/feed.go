package domain

import (
	"errors"
	"time"
)

// field limits for feeds
const (
	MaxFeedNameLen        = 255
	MaxFeedURLLen         = 500
	MaxFeedDescriptionLen = 1000
	MaxFeedCategoryLen    = 100
	MaxFeedErrorLen       = 1000

	MinCollectInterval     = 1
	MaxCollectInterval     = 10080 // one week in minutes
	DefaultCollectInterval = 60
)

var (
	// ErrNotFound is returned by stores when the requested record doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateURL is returned when a feed with the same url is already registered
	ErrDuplicateURL = errors.New("feed url already exists")
)

// FeedStatus is the health status of a feed
type FeedStatus string

// feed statuses
const (
	FeedStatusActive   FeedStatus = "active"
	FeedStatusError    FeedStatus = "error"
	FeedStatusDisabled FeedStatus = "disabled"
)

// Valid reports whether the status is one of the known values
func (s FeedStatus) Valid() bool {
	switch s {
	case FeedStatusActive, FeedStatusError, FeedStatusDisabled:
		return true
	}
	return false
}

// Feed represents a configured RSS/Atom source with its collection state
type Feed struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	URL                    string     `json:"url"`
	Description            string     `json:"description,omitempty"`
	Category               string     `json:"category,omitempty"`
	IsActive               bool       `json:"is_active"`
	CollectIntervalMinutes int        `json:"collect_interval_minutes"`
	LastCollectTime        *time.Time `json:"last_collect_time,omitempty"`
	Status                 FeedStatus `json:"status"`
	LastError              string     `json:"last_error,omitempty"`
	ItemsCount             int        `json:"items_count"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// CollectInterval returns the collect interval as duration
func (f *Feed) CollectInterval() time.Duration {
	return time.Duration(f.CollectIntervalMinutes) * time.Minute
}

// NextCollectTime returns the time the feed becomes due, nil if it was never collected
func (f *Feed) NextCollectTime() *time.Time {
	if f.LastCollectTime == nil {
		return nil
	}
	next := f.LastCollectTime.Add(f.CollectInterval())
	return &next
}

// IsDue decides if the feed should be collected at the given moment.
// Only feeds with active status are ever due. A feed never collected before is due right away,
// otherwise it's due once the collect interval elapsed since the last collection attempt.
func IsDue(f *Feed, now time.Time) bool {
	if f == nil || f.Status != FeedStatusActive {
		return false
	}
	if f.LastCollectTime == nil {
		return true
	}
	return !now.Before(f.LastCollectTime.Add(f.CollectInterval()))
}

// CollectUpdate is the state change recorded for a feed after a collection attempt
type CollectUpdate struct {
	Status          FeedStatus
	LastError       string
	LastCollectTime time.Time
	ItemsAdded      int // added to the items counter, never negative
}

// Statistics is an aggregated view over all feeds
type Statistics struct {
	TotalFeeds  int `json:"total_feeds"`
	ActiveFeeds int `json:"active_feeds"`
	ErrorFeeds  int `json:"error_feeds"`
	TotalItems  int `json:"total_items"`
}

// FeedStatistics is a collection summary of a single feed
type FeedStatistics struct {
	FeedID                 int64      `json:"feed_id"`
	FeedName               string     `json:"feed_name"`
	Status                 FeedStatus `json:"status"`
	ItemsCount             int        `json:"items_count"`
	LastCollectTime        *time.Time `json:"last_collect_time,omitempty"`
	CollectIntervalMinutes int        `json:"collect_interval_minutes"`
	LastError              string     `json:"last_error,omitempty"`
}
