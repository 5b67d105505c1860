// Package config loads the application configuration from a YAML file
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Fetcher  FetcherConfig  `yaml:"fetcher" json:"fetcher" jsonschema:"description=Feed fetcher configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Collection schedule configuration"`
	Feeds    []FeedConfig   `yaml:"feeds" json:"feeds,omitempty" jsonschema:"description=Feeds registered on startup if missing"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:rsscollect.db?mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=1,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// FetcherConfig holds HTTP settings used to download feeds
type FetcherConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-request timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=RSS Feed Collector Bot/1.0,description=User-Agent header sent with requests"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,minimum=1,description=Maximum feed document size in bytes"`
}

// ScheduleConfig holds collection scheduling settings
type ScheduleConfig struct {
	CheckInterval time.Duration `yaml:"check_interval" json:"check_interval" jsonschema:"default=1m,description=How often due feeds are checked"`
	MaxWorkers    int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,maximum=100,description=Maximum feeds collected concurrently"`
}

// FeedConfig is a feed registered from the configuration file
type FeedConfig struct {
	Name        string `yaml:"name" json:"name" jsonschema:"description=Feed name"`
	URL         string `yaml:"url" json:"url" jsonschema:"description=Feed url"`
	Description string `yaml:"description" json:"description,omitempty" jsonschema:"description=Feed description"`
	Category    string `yaml:"category" json:"category,omitempty" jsonschema:"description=Feed category"`
	Interval    int    `yaml:"interval" json:"interval,omitempty" jsonschema:"default=60,minimum=1,maximum=10080,description=Collect interval in minutes"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file provided
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:rsscollect.db?mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// fetcher
	if cfg.Fetcher.Timeout == 0 {
		cfg.Fetcher.Timeout = 30 * time.Second
	}
	if cfg.Fetcher.UserAgent == "" {
		cfg.Fetcher.UserAgent = "RSS Feed Collector Bot/1.0"
	}
	if cfg.Fetcher.MaxBodySize == 0 {
		cfg.Fetcher.MaxBodySize = 10 * 1024 * 1024
	}

	// schedule
	if cfg.Schedule.CheckInterval == 0 {
		cfg.Schedule.CheckInterval = time.Minute
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	// feeds
	for i := range cfg.Feeds {
		if cfg.Feeds[i].Name == "" {
			cfg.Feeds[i].Name = cfg.Feeds[i].URL
		}
		if cfg.Feeds[i].Interval == 0 {
			cfg.Feeds[i].Interval = 60
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Fetcher.Timeout < time.Second {
		return errors.New("fetcher timeout must be at least 1 second")
	}
	if cfg.Fetcher.MaxBodySize < 1 {
		return errors.New("fetcher max_body_size must be positive")
	}
	if cfg.Schedule.CheckInterval < time.Second {
		return errors.New("schedule check_interval must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 || cfg.Schedule.MaxWorkers > 100 {
		return errors.New("schedule max_workers must be between 1 and 100")
	}
	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d]: url is required", i)
		}
		if f.Interval < 1 || f.Interval > 10080 {
			return fmt.Errorf("feeds[%d]: interval must be between 1 and 10080 minutes", i)
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeeds returns feeds defined in the configuration
func (c *Config) GetFeeds() []FeedConfig {
	return c.Feeds
}
