package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/rsscollect/pkg/collector"
	"github.com/umputun/rsscollect/pkg/config"
	"github.com/umputun/rsscollect/pkg/feed"
	"github.com/umputun/rsscollect/pkg/repository"
	"github.com/umputun/rsscollect/pkg/scheduler"
	"github.com/umputun/rsscollect/pkg/service"
	"github.com/umputun/rsscollect/server"
)

// Opts with all CLI options
type Opts struct {
	Config    string `short:"c" long:"config" env:"RSS_COLLECT_CONFIG" description:"configuration file (yaml)"`
	DB        string `long:"db" env:"RSS_COLLECT_DB" description:"database DSN, overrides config"`
	Timeout   int    `long:"timeout" env:"RSS_COLLECT_TIMEOUT" description:"fetch timeout in seconds, overrides config"`
	UserAgent string `long:"user-agent" env:"RSS_COLLECT_USER_AGENT" description:"fetch User-Agent, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`

	Server      ServerCmd      `command:"server" description:"run HTTP API with periodic collection"`
	Collect     CollectCmd     `command:"collect" description:"collect all due feeds"`
	CollectFeed CollectFeedCmd `command:"collect-feed" description:"collect a single feed"`
	Stats       StatsCmd       `command:"stats" description:"show collection statistics"`
	AddFeed     AddFeedCmd     `command:"add-feed" description:"register a new feed"`
	Recent      RecentCmd      `command:"recent" description:"list recently published items"`
}

// ServerCmd has options of the server command
type ServerCmd struct {
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
}

// CollectCmd has options of the collect command
type CollectCmd struct {
	Force bool `short:"f" long:"force" description:"collect all active feeds, due or not"`
}

// CollectFeedCmd has options of the collect-feed command
type CollectFeedCmd struct {
	FeedID int64 `long:"feed-id" required:"true" description:"feed id"`
	Force  bool  `short:"f" long:"force" description:"collect even if the feed is not due"`
}

// StatsCmd is the stats command, no options
type StatsCmd struct{}

// AddFeedCmd has options of the add-feed command
type AddFeedCmd struct {
	Name        string `long:"name" required:"true" description:"feed name"`
	URL         string `long:"url" required:"true" description:"feed url"`
	Description string `long:"description" description:"feed description"`
	Category    string `long:"category" description:"feed category"`
	Interval    int    `long:"interval" default:"60" description:"collect interval in minutes"`
}

// RecentCmd has options of the recent command
type RecentCmd struct {
	Days  int `long:"days" default:"7" description:"published within the last N days"`
	Limit int `long:"limit" default:"100" description:"maximum number of items"`
}

var revision = "unknown"

// errFailures is returned by commands completed with some of the feeds failed
var errFailures = errors.New("some feeds failed")

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	lgr.Printf("[DEBUG] rsscollect version %s, command %s", revision, parser.Active.Name)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, parser.Active.Name, os.Stdout)
	cancel()
	if err != nil {
		if !errors.Is(err, errFailures) {
			lgr.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		}
		os.Exit(1)
	}
}

// app holds the wired components shared by all commands
type app struct {
	cfg       *config.Config
	repos     *repository.Repositories
	collector *collector.Collector
	feeds     *service.FeedService
	out       io.Writer
}

// run executes the command, returns errFailures if the command completed but some feeds failed
func run(ctx context.Context, opts Opts, command string, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	switch command {
	case "server":
		return a.runServer(ctx, opts.Debug)
	case "collect":
		return a.collect(ctx, opts.Collect)
	case "collect-feed":
		return a.collectFeed(ctx, opts.CollectFeed)
	case "stats":
		return a.stats(ctx)
	case "add-feed":
		return a.addFeed(ctx, opts.AddFeed)
	case "recent":
		return a.recent(ctx, opts.Recent)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// loadConfig reads the config file if provided and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	if opts.Timeout > 0 {
		cfg.Fetcher.Timeout = time.Duration(opts.Timeout) * time.Second
	}
	if opts.UserAgent != "" {
		cfg.Fetcher.UserAgent = opts.UserAgent
	}
	if opts.Server.Listen != "" {
		cfg.Server.Listen = opts.Server.Listen
	}
	return cfg, nil
}

// newApp opens the database and wires collection components
func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	fetcher := feed.NewFetcher(feed.FetcherConfig{
		Timeout:     cfg.Fetcher.Timeout,
		UserAgent:   cfg.Fetcher.UserAgent,
		MaxBodySize: cfg.Fetcher.MaxBodySize,
	})

	return &app{
		cfg:   cfg,
		repos: repos,
		collector: collector.NewCollector(collector.Config{
			FeedStore:  repos.Feed,
			ItemStore:  repos.Item,
			Fetcher:    fetcher,
			Parser:     feed.NewParser(),
			MaxWorkers: cfg.Schedule.MaxWorkers,
		}),
		feeds: service.NewFeedService(repos.Feed),
		out:   out,
	}, nil
}

// runServer registers configured feeds, starts the scheduler and serves the HTTP API until ctx is canceled
func (a *app) runServer(ctx context.Context, debug bool) error {
	if err := a.seedFeeds(ctx); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(scheduler.Params{
		Collector:     a.collector,
		CheckInterval: a.cfg.Schedule.CheckInterval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:    a.cfg,
		Feeds:     a.repos.Feed,
		Items:     a.repos.Item,
		Registrar: a.feeds,
		Collector: a.collector,
		Health:    a.repos,
		Runs:      sched,
		Version:   revision,
		Debug:     debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	lgr.Print("[INFO] shutdown complete")
	return nil
}

// seedFeeds registers feeds from the config file which are not registered yet
func (a *app) seedFeeds(ctx context.Context) error {
	feeds := a.cfg.GetFeeds()
	if len(feeds) == 0 {
		return nil
	}
	reqs := make([]service.FeedRequest, 0, len(feeds))
	for _, f := range feeds {
		exists, err := a.repos.Feed.ExistsByURL(ctx, f.URL, 0)
		if err != nil {
			return fmt.Errorf("failed to check feed %s: %w", f.URL, err)
		}
		if exists {
			continue
		}
		reqs = append(reqs, service.FeedRequest{Name: f.Name, URL: f.URL, Description: f.Description,
			Category: f.Category, CollectIntervalMinutes: f.Interval})
	}
	if len(reqs) == 0 {
		return nil
	}

	res, err := a.feeds.BatchCreateFeeds(ctx, reqs)
	if err != nil {
		return fmt.Errorf("failed to register configured feeds: %w", err)
	}
	for _, fail := range res.Failed {
		lgr.Printf("[WARN] configured feed %s rejected: %s", fail.Request.URL, fail.Error)
	}
	return nil
}

// SetupLog configures lgr with colorized levels, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
