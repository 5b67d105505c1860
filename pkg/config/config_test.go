package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

database:
  dsn: "file:custom.db?mode=rwc"
  max_open_conns: 3

fetcher:
  timeout: 10s
  user_agent: "test agent"

schedule:
  check_interval: 30s
  max_workers: 8

feeds:
  - url: https://example.com/feed1.xml
    name: Feed1
    category: tech
    interval: 5
  - url: https://example.com/feed2.xml
    name: Feed2
    interval: 10
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:custom.db?mode=rwc", cfg.Database.DSN)
		assert.Equal(t, 3, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 10*time.Second, cfg.Fetcher.Timeout)
		assert.Equal(t, "test agent", cfg.Fetcher.UserAgent)
		assert.Equal(t, int64(10*1024*1024), cfg.Fetcher.MaxBodySize)
		assert.Equal(t, 30*time.Second, cfg.Schedule.CheckInterval)
		assert.Equal(t, 8, cfg.Schedule.MaxWorkers)

		require.Len(t, cfg.Feeds, 2)
		assert.Equal(t, "https://example.com/feed1.xml", cfg.Feeds[0].URL)
		assert.Equal(t, "Feed1", cfg.Feeds[0].Name)
		assert.Equal(t, "tech", cfg.Feeds[0].Category)
		assert.Equal(t, 5, cfg.Feeds[0].Interval)
		assert.Equal(t, 10, cfg.Feeds[1].Interval)
	})

	t.Run("defaults", func(t *testing.T) {
		configContent := `
feeds:
  - url: https://example.com/feed.xml
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Contains(t, cfg.Database.DSN, "rsscollect.db")
		assert.Equal(t, "RSS Feed Collector Bot/1.0", cfg.Fetcher.UserAgent)
		assert.Equal(t, time.Minute, cfg.Schedule.CheckInterval)
		assert.Equal(t, 5, cfg.Schedule.MaxWorkers)

		require.Len(t, cfg.Feeds, 1)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Feeds[0].Name) // name defaults to URL
		assert.Equal(t, 60, cfg.Feeds[0].Interval)
	})

	t.Run("environment expansion", func(t *testing.T) {
		t.Setenv("RSSCOLLECT_TEST_AGENT", "agent-from-env")
		cfg, err := Load(writeConfig(t, "fetcher:\n  user_agent: ${RSSCOLLECT_TEST_AGENT}\n"))
		require.NoError(t, err)
		assert.Equal(t, "agent-from-env", cfg.Fetcher.UserAgent)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			errMsg  string
		}{
			{name: "too many workers", content: "schedule:\n  max_workers: 500\n", errMsg: "max_workers"},
			{name: "short check interval", content: "schedule:\n  check_interval: 10ms\n", errMsg: "check_interval"},
			{name: "short fetch timeout", content: "fetcher:\n  timeout: 1ms\n", errMsg: "fetcher timeout"},
			{name: "feed without url", content: "feeds:\n  - name: nourl\n", errMsg: "feeds[0]: url is required"},
			{name: "feed interval too large", content: "feeds:\n  - url: https://example.com/rss\n    interval: 20000\n",
				errMsg: "feeds[0]: interval"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg, err := Load(writeConfig(t, tt.content))
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "validate config")
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 3600, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 30*time.Second, cfg.Fetcher.Timeout)
	assert.Empty(t, cfg.Feeds)
	require.NoError(t, validate(cfg))
}

func TestConfig_GetFeeds(t *testing.T) {
	cfg := &Config{
		Feeds: []FeedConfig{
			{URL: "https://feed1.com", Name: "Feed1", Interval: 5},
			{URL: "https://feed2.com", Name: "Feed2", Interval: 10},
		},
	}

	feeds := cfg.GetFeeds()
	assert.Len(t, feeds, 2)
	assert.Equal(t, cfg.Feeds, feeds)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second}}

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
