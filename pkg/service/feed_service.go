// Package service implements feed registration and maintenance on top of the feed store
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"golang.org/x/net/idna"

	"github.com/umputun/rsscollect/pkg/domain"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore

// FeedStore is the persistence used by FeedService
type FeedStore interface {
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error)
	UpdateFeed(ctx context.Context, feed *domain.Feed) error
	SetFeedActive(ctx context.Context, id int64, active bool) error
	DeleteFeed(ctx context.Context, id int64) error
}

// ValidationError is returned for invalid feed registration data
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// FeedRequest is the data to register a new feed
type FeedRequest struct {
	Name                   string `json:"name"`
	URL                    string `json:"url"`
	Description            string `json:"description,omitempty"`
	Category               string `json:"category,omitempty"`
	IsActive               *bool  `json:"is_active,omitempty"`                // active if not set
	CollectIntervalMinutes int    `json:"collect_interval_minutes,omitempty"` // default interval if 0
}

// FeedUpdate is a partial update of a registered feed, nil fields are left unchanged
type FeedUpdate struct {
	Name                   *string `json:"name,omitempty"`
	URL                    *string `json:"url,omitempty"`
	Description            *string `json:"description,omitempty"`
	Category               *string `json:"category,omitempty"`
	IsActive               *bool   `json:"is_active,omitempty"`
	CollectIntervalMinutes *int    `json:"collect_interval_minutes,omitempty"`
}

// BatchCreateResult reports feeds created by BatchCreateFeeds and the rejected requests
type BatchCreateResult struct {
	Created []*domain.Feed       `json:"created"`
	Failed  []BatchCreateFailure `json:"failed"`
}

// BatchCreateFailure is a rejected request with the reason
type BatchCreateFailure struct {
	Request FeedRequest `json:"request"`
	Error   string      `json:"error"`
}

// FeedService registers and maintains feeds
type FeedService struct {
	store FeedStore
}

// NewFeedService makes a feed service for the store
func NewFeedService(store FeedStore) *FeedService {
	return &FeedService{store: store}
}

// CreateFeed validates the request and registers a new feed
func (s *FeedService) CreateFeed(ctx context.Context, req FeedRequest) (*domain.Feed, error) {
	f, err := s.newFeed(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, f.URL, 0); err != nil {
		return nil, err
	}
	if err := s.store.CreateFeed(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicateURL) {
			return nil, &ValidationError{Field: "url", Message: fmt.Sprintf("feed with url %q already exists", f.URL)}
		}
		return nil, fmt.Errorf("create feed: %w", err)
	}
	lgr.Printf("[INFO] feed %d (%s) registered for %s", f.ID, f.Name, f.URL)
	return f, nil
}

// BatchCreateFeeds registers feeds one by one, invalid and duplicate requests are reported without stopping the batch.
// Error returned only if the store fails.
func (s *FeedService) BatchCreateFeeds(ctx context.Context, reqs []FeedRequest) (BatchCreateResult, error) {
	res := BatchCreateResult{Created: []*domain.Feed{}, Failed: []BatchCreateFailure{}}
	for _, req := range reqs {
		f, err := s.CreateFeed(ctx, req)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return res, err
			}
			res.Failed = append(res.Failed, BatchCreateFailure{Request: req, Error: verr.Error()})
			continue
		}
		res.Created = append(res.Created, f)
	}
	lgr.Printf("[INFO] batch registration: %d created, %d failed", len(res.Created), len(res.Failed))
	return res, nil
}

// UpdateFeed applies the partial update to the feed with a single store write. Collection state is not affected,
// activation change also sets the status accordingly.
func (s *FeedService) UpdateFeed(ctx context.Context, id int64, upd FeedUpdate) (*domain.Feed, error) {
	f, err := s.store.GetFeed(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feed %d: %w", id, err)
	}

	if upd.Name != nil {
		f.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.URL != nil {
		f.URL = strings.TrimSpace(*upd.URL)
	}
	if upd.Description != nil {
		f.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Category != nil {
		f.Category = strings.TrimSpace(*upd.Category)
	}
	if upd.CollectIntervalMinutes != nil {
		f.CollectIntervalMinutes = *upd.CollectIntervalMinutes
		if f.CollectIntervalMinutes == 0 {
			f.CollectIntervalMinutes = domain.DefaultCollectInterval
		}
	}
	if err := validateFeed(f); err != nil {
		return nil, err
	}
	if upd.URL != nil {
		if err := s.checkUnique(ctx, f.URL, f.ID); err != nil {
			return nil, err
		}
	}
	activeChanged := upd.IsActive != nil && *upd.IsActive != f.IsActive
	if activeChanged {
		f.IsActive = *upd.IsActive
	}

	if err := s.store.UpdateFeed(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicateURL) {
			return nil, &ValidationError{Field: "url", Message: fmt.Sprintf("feed with url %q already exists", f.URL)}
		}
		return nil, fmt.Errorf("update feed %d: %w", id, err)
	}

	if activeChanged {
		f.Status = statusFor(f.IsActive)
		lgr.Printf("[INFO] feed %d (%s) status changed to %s", f.ID, f.Name, f.Status)
	}
	return f, nil
}

// DeleteFeed removes the feed with all its items
func (s *FeedService) DeleteFeed(ctx context.Context, id int64) error {
	if err := s.store.DeleteFeed(ctx, id); err != nil {
		return fmt.Errorf("delete feed %d: %w", id, err)
	}
	lgr.Printf("[INFO] feed %d deleted", id)
	return nil
}

// ActivateFeed enables collection of the feed and resets its status to active
func (s *FeedService) ActivateFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return s.toggle(ctx, id, true)
}

// DeactivateFeed disables collection of the feed
func (s *FeedService) DeactivateFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return s.toggle(ctx, id, false)
}

func (s *FeedService) toggle(ctx context.Context, id int64, active bool) (*domain.Feed, error) {
	f, err := s.store.GetFeed(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feed %d: %w", id, err)
	}
	if err := s.setActive(ctx, f, active); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedService) setActive(ctx context.Context, f *domain.Feed, active bool) error {
	if err := s.store.SetFeedActive(ctx, f.ID, active); err != nil {
		return fmt.Errorf("set feed %d active=%v: %w", f.ID, active, err)
	}
	f.IsActive = active
	f.Status = statusFor(active)
	lgr.Printf("[INFO] feed %d (%s) status changed to %s", f.ID, f.Name, f.Status)
	return nil
}

// statusFor returns the status a feed gets when its active flag is switched
func statusFor(active bool) domain.FeedStatus {
	if active {
		return domain.FeedStatusActive
	}
	return domain.FeedStatusDisabled
}

func (s *FeedService) checkUnique(ctx context.Context, feedURL string, excludeID int64) error {
	exists, err := s.store.ExistsByURL(ctx, feedURL, excludeID)
	if err != nil {
		return fmt.Errorf("check url uniqueness: %w", err)
	}
	if exists {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("feed with url %q already exists", feedURL)}
	}
	return nil
}

// newFeed makes a validated feed from the request
func (s *FeedService) newFeed(req FeedRequest) (*domain.Feed, error) {
	f := &domain.Feed{
		Name:                   strings.TrimSpace(req.Name),
		URL:                    strings.TrimSpace(req.URL),
		Description:            strings.TrimSpace(req.Description),
		Category:               strings.TrimSpace(req.Category),
		IsActive:               true,
		CollectIntervalMinutes: req.CollectIntervalMinutes,
		Status:                 domain.FeedStatusActive,
	}
	if req.IsActive != nil && !*req.IsActive {
		f.IsActive, f.Status = false, domain.FeedStatusDisabled
	}
	if f.CollectIntervalMinutes == 0 {
		f.CollectIntervalMinutes = domain.DefaultCollectInterval
	}
	if err := validateFeed(f); err != nil {
		return nil, err
	}
	return f, nil
}

func validateFeed(f *domain.Feed) error {
	switch {
	case f.Name == "":
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	case utf8.RuneCountInString(f.Name) > domain.MaxFeedNameLen:
		return &ValidationError{Field: "name", Message: fmt.Sprintf("longer than %d characters", domain.MaxFeedNameLen)}
	case utf8.RuneCountInString(f.Description) > domain.MaxFeedDescriptionLen:
		return &ValidationError{Field: "description", Message: fmt.Sprintf("longer than %d characters", domain.MaxFeedDescriptionLen)}
	case utf8.RuneCountInString(f.Category) > domain.MaxFeedCategoryLen:
		return &ValidationError{Field: "category", Message: fmt.Sprintf("longer than %d characters", domain.MaxFeedCategoryLen)}
	case f.CollectIntervalMinutes < domain.MinCollectInterval || f.CollectIntervalMinutes > domain.MaxCollectInterval:
		return &ValidationError{Field: "collect_interval_minutes",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinCollectInterval, domain.MaxCollectInterval)}
	}
	return validateURL(f.URL)
}

func validateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "cannot be empty"}
	}
	if len(rawURL) > domain.MaxFeedURLLen {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("longer than %d characters", domain.MaxFeedURLLen)}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("invalid url format: %s", rawURL)}
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("must use http or https protocol: %s", rawURL)}
	}

	host := u.Hostname()
	if host == "" {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("must contain a valid host: %s", rawURL)}
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("invalid host %q: %v", host, err)}
	}
	return nil
}
