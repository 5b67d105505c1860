// Package scheduler periodically triggers collection of due feeds
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rsscollect/pkg/domain"
)

//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector

// DefaultCheckInterval is how often due feeds are checked if not set
const DefaultCheckInterval = time.Minute

// Collector collects feeds due at the moment
type Collector interface {
	CollectDueFeeds(ctx context.Context) (domain.BatchResult, error)
}

// Params for scheduler
type Params struct {
	Collector     Collector
	CheckInterval time.Duration
}

// RunInfo describes the last completed collection run
type RunInfo struct {
	StartedAt time.Time          `json:"started_at"`
	Duration  time.Duration      `json:"duration"`
	Result    domain.BatchResult `json:"result"`
	Error     string             `json:"error,omitempty"`
}

// Scheduler runs collection of due feeds right away and then on every check interval.
// Runs never overlap, a tick coming while the previous run is in progress is skipped.
type Scheduler struct {
	collector     Collector
	checkInterval time.Duration

	runMu   sync.Mutex // held for the duration of a run
	infoMu  sync.RWMutex
	lastRun *RunInfo

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.CheckInterval <= 0 {
		params.CheckInterval = DefaultCheckInterval
	}
	return &Scheduler{collector: params.Collector, checkInterval: params.CheckInterval}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.collectWorker(ctx)
	lgr.Printf("[INFO] scheduler started with check interval %v", s.checkInterval)
}

// Stop gracefully stops the scheduler, waits for the active run to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunOnce collects due feeds, waiting for a run in progress to complete first
func (s *Scheduler) RunOnce(ctx context.Context) (domain.BatchResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.run(ctx)
}

// LastRun returns info about the last completed run, nil if there was none
func (s *Scheduler) LastRun() *RunInfo {
	s.infoMu.RLock()
	defer s.infoMu.RUnlock()
	if s.lastRun == nil {
		return nil
	}
	info := *s.lastRun
	return &info
}

func (s *Scheduler) collectWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// run immediately on start
	s.tryRun(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tryRun(ctx)
		}
	}
}

// tryRun starts a run unless one is already active
func (s *Scheduler) tryRun(ctx context.Context) {
	if !s.runMu.TryLock() {
		lgr.Printf("[DEBUG] collection is still running, skip this check")
		return
	}
	defer s.runMu.Unlock()
	if _, err := s.run(ctx); err != nil {
		lgr.Printf("[ERROR] scheduled collection failed: %v", err)
	}
}

// run must be called with runMu held
func (s *Scheduler) run(ctx context.Context) (domain.BatchResult, error) {
	st := time.Now()
	res, err := s.collector.CollectDueFeeds(ctx)

	info := &RunInfo{StartedAt: st, Duration: time.Since(st), Result: res}
	if err != nil {
		info.Error = err.Error()
	}
	s.infoMu.Lock()
	s.lastRun = info
	s.infoMu.Unlock()

	if err == nil && res.Total() > 0 {
		lgr.Printf("[INFO] collection run completed in %v: %d succeeded, %d failed",
			info.Duration.Round(time.Millisecond), res.SuccessCount, res.FailedCount)
	}
	return res, err
}
