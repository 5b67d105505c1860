package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/samber/lo"

	"github.com/umputun/rsscollect/pkg/domain"
	"github.com/umputun/rsscollect/pkg/service"
)

// query limits
const (
	defaultRecentDays  = 7
	defaultRecentLimit = 100
	maxItemsLimit      = 1000
	defaultItemsLimit  = 50
)

// statusHandler returns server status with database state and the last scheduled run.
// Unreachable database makes it 503.
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	code := http.StatusOK
	if s.health != nil {
		status["database"] = "ok"
		if err := s.health.Ping(r.Context()); err != nil {
			lgr.Printf("[WARN] database ping failed: %v", err)
			status["status"] = "degraded"
			status["database"] = "unavailable"
			code = http.StatusServiceUnavailable
		}
	}
	if s.runs != nil {
		if info := s.runs.LastRun(); info != nil {
			status["last_run"] = info
		}
	}
	renderJSON(w, r, code, status)
}

// statsResponse is the collection overview
type statsResponse struct {
	Statistics domain.Statistics       `json:"statistics"`
	ErrorFeeds []domain.FeedStatistics `json:"error_feeds"`
	DueFeeds   []domain.FeedStatistics `json:"due_feeds"`
}

// statsHandler returns aggregated statistics with the list of failing and due feeds
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := s.collector.GetCollectStatistics(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to get statistics: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	feeds, err := s.feeds.GetFeeds(ctx, false)
	if err != nil {
		lgr.Printf("[ERROR] failed to get feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	due, err := s.collector.DueFeeds(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to get due feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	feedStats := func(f *domain.Feed, _ int) domain.FeedStatistics { return s.collector.GetFeedStatistics(f) }
	errFeeds := lo.Filter(feeds, func(f *domain.Feed, _ int) bool { return f.Status == domain.FeedStatusError })
	renderJSON(w, r, http.StatusOK, statsResponse{
		Statistics: stats,
		ErrorFeeds: lo.Map(errFeeds, feedStats),
		DueFeeds:   lo.Map(due, feedStats),
	})
}

// listFeedsHandler returns registered feeds, only active ones with ?active=true
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	feeds, err := s.feeds.GetFeeds(r.Context(), activeOnly)
	if err != nil {
		lgr.Printf("[ERROR] failed to get feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if feeds == nil {
		feeds = []*domain.Feed{}
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// createFeedHandler registers a new feed from json request
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req service.FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	f, err := s.registrar.CreateFeed(r.Context(), req)
	if err != nil {
		renderServiceError(w, r, "create feed", err)
		return
	}
	renderJSON(w, r, http.StatusCreated, f)
}

// getFeedHandler returns a single feed
func (s *Server) getFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	f, err := s.feeds.GetFeed(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, "get feed", err)
		return
	}
	renderJSON(w, r, http.StatusOK, f)
}

// updateFeedHandler applies a partial update to a feed
func (s *Server) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	var upd service.FeedUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	f, err := s.registrar.UpdateFeed(r.Context(), id, upd)
	if err != nil {
		renderServiceError(w, r, "update feed", err)
		return
	}
	renderJSON(w, r, http.StatusOK, f)
}

// deleteFeedHandler removes a feed with all its items
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	if err := s.registrar.DeleteFeed(r.Context(), id); err != nil {
		renderServiceError(w, r, "delete feed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) activateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	f, err := s.registrar.ActivateFeed(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, "activate feed", err)
		return
	}
	renderJSON(w, r, http.StatusOK, f)
}

func (s *Server) deactivateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	f, err := s.registrar.DeactivateFeed(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, "deactivate feed", err)
		return
	}
	renderJSON(w, r, http.StatusOK, f)
}

// collectFeedHandler collects a single feed. Without ?force=true a feed which is not due is skipped.
func (s *Server) collectFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	f, err := s.feeds.GetFeed(ctx, id)
	if err != nil {
		renderServiceError(w, r, "get feed", err)
		return
	}

	var res domain.FeedResult
	if isForced(r) {
		res = s.collector.ForceCollectFeed(ctx, f)
	} else {
		res = s.collector.CollectFeed(ctx, f)
	}
	renderJSON(w, r, http.StatusOK, res)
}

// collectHandler collects all due feeds, or all active feeds with ?force=true
func (s *Server) collectHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !isForced(r) {
		res, err := s.collector.CollectDueFeeds(ctx)
		if err != nil {
			lgr.Printf("[ERROR] failed to collect due feeds: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		renderJSON(w, r, http.StatusOK, res)
		return
	}

	feeds, err := s.feeds.GetFeeds(ctx, true)
	if err != nil {
		lgr.Printf("[ERROR] failed to get active feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, s.collector.CollectFeeds(ctx, feeds, true))
}

// recentItemsHandler returns items published in the last ?days=N days, newest first
func (s *Server) recentItemsHandler(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", defaultRecentDays, 1, 3650)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", defaultRecentLimit, 1, maxItemsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	items, err := s.items.GetRecentItems(r.Context(), days, limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get recent items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*domain.Item{}
	}
	renderJSON(w, r, http.StatusOK, items)
}

// feedItemsHandler returns items of a single feed with ?limit and ?offset paging
func (s *Server) feedItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", defaultItemsLimit, 1, maxItemsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, 1<<31-1)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	items, err := s.items.GetItemsByFeed(r.Context(), id, limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to get items for feed %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*domain.Item{}
	}
	renderJSON(w, r, http.StatusOK, items)
}

// feedID extracts feed id from the path, renders bad request if it's not valid
func feedID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid feed ID"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func isForced(r *http.Request) bool {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	return force
}

// queryInt returns integer query parameter, def if not set
func queryInt(r *http.Request, name string, def, minVal, maxVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < minVal || v > maxVal {
		return 0, fmt.Errorf("invalid %s, must be between %d and %d", name, minVal, maxVal)
	}
	return v, nil
}

// renderServiceError maps service and store errors to http status codes
func renderServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		renderError(w, r, verr, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, errors.New("feed not found"), http.StatusNotFound)
	default:
		lgr.Printf("[ERROR] failed to %s: %v", op, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
