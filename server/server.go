// Package server provides the HTTP API to trigger collection, register feeds and read collected items
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/rsscollect/pkg/domain"
	"github.com/umputun/rsscollect/pkg/scheduler"
	"github.com/umputun/rsscollect/pkg/service"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/registrar.go -pkg mocks -skip-ensure -fmt goimports . Registrar
//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector
//go:generate moq -out mocks/health_checker.go -pkg mocks -skip-ensure -fmt goimports . HealthChecker
//go:generate moq -out mocks/run_reporter.go -pkg mocks -skip-ensure -fmt goimports . RunReporter

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	feeds     FeedStore
	items     ItemStore
	registrar Registrar
	collector Collector
	health    HealthChecker
	runs      RunReporter
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params defines server dependencies
type Params struct {
	Config    ConfigProvider
	Feeds     FeedStore
	Items     ItemStore
	Registrar Registrar
	Collector Collector
	Health    HealthChecker // optional, database state reported by status endpoint
	Runs      RunReporter   // optional, last scheduled run reported by status endpoint
	Version   string
	Debug     bool
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// FeedStore provides read access to registered feeds
type FeedStore interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error)
}

// ItemStore provides read access to collected items
type ItemStore interface {
	GetRecentItems(ctx context.Context, days, limit int) ([]*domain.Item, error)
	GetItemsByFeed(ctx context.Context, feedID int64, limit, offset int) ([]*domain.Item, error)
}

// Registrar registers and maintains feeds
type Registrar interface {
	CreateFeed(ctx context.Context, req service.FeedRequest) (*domain.Feed, error)
	UpdateFeed(ctx context.Context, id int64, upd service.FeedUpdate) (*domain.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
	ActivateFeed(ctx context.Context, id int64) (*domain.Feed, error)
	DeactivateFeed(ctx context.Context, id int64) (*domain.Feed, error)
}

// Collector runs feed collection on demand
type Collector interface {
	CollectDueFeeds(ctx context.Context) (domain.BatchResult, error)
	CollectFeeds(ctx context.Context, feeds []*domain.Feed, force bool) domain.BatchResult
	CollectFeed(ctx context.Context, f *domain.Feed) domain.FeedResult
	ForceCollectFeed(ctx context.Context, f *domain.Feed) domain.FeedResult
	DueFeeds(ctx context.Context) ([]*domain.Feed, error)
	GetCollectStatistics(ctx context.Context) (domain.Statistics, error)
	GetFeedStatistics(f *domain.Feed) domain.FeedStatistics
}

// HealthChecker checks the storage is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RunReporter reports the last scheduled collection run
type RunReporter interface {
	LastRun() *scheduler.RunInfo
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:    p.Config,
		feeds:     p.Feeds,
		items:     p.Items,
		registrar: p.Registrar,
		collector: p.Collector,
		health:    p.Health,
		runs:      p.Runs,
		version:   p.Version,
		debug:     p.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// collection triggered over http can take longer than a regular request
		WriteTimeout: 10 * timeout,
		IdleTimeout:  timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("rsscollect", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /stats", s.statsHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.createFeedHandler)
		r.HandleFunc("GET /feeds/{id}", s.getFeedHandler)
		r.HandleFunc("PUT /feeds/{id}", s.updateFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("POST /feeds/{id}/activate", s.activateFeedHandler)
		r.HandleFunc("POST /feeds/{id}/deactivate", s.deactivateFeedHandler)
		r.HandleFunc("POST /feeds/{id}/collect", s.collectFeedHandler)
		r.HandleFunc("GET /feeds/{id}/items", s.feedItemsHandler)

		r.HandleFunc("POST /collect", s.collectHandler)
		r.HandleFunc("GET /items/recent", s.recentItemsHandler)
	})
}
