package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test Feed</title>
  <item>
    <title>First item</title>
    <link>https://example.com/1</link>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title>Second item</title>
    <link>https://example.com/2</link>
    <guid>id-2</guid>
    <pubDate>%s</pubDate>
  </item>
</channel>
</rss>`

func testDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "test.db") + "?mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	pub := time.Now().Add(-time.Hour).UTC().Format(time.RFC1123Z)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rss":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = fmt.Fprintf(w, testRSS, pub, pub)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func runCmd(t *testing.T, opts Opts, command string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), opts, command, &out)
	return out.String(), err
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRun_MissingConfig(t *testing.T) {
	opts := Opts{Config: "non-existent-config.yml"}
	_, err := runCmd(t, opts, "stats")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0o600))

	_, err := runCmd(t, Opts{Config: configPath}, "stats")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_UnknownCommand(t *testing.T) {
	_, err := runCmd(t, Opts{DB: testDSN(t)}, "blah")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "blah"`)
}

func TestLoadConfig_Overrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("fetcher:\n  timeout: 5s\n  user_agent: from-file\n"), 0o600))

	cfg, err := loadConfig(Opts{Config: configPath})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, "from-file", cfg.Fetcher.UserAgent)

	cfg, err = loadConfig(Opts{Config: configPath, Timeout: 12, UserAgent: "from-env", DB: "file:x.db",
		Server: ServerCmd{Listen: ":9999"}})
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, "from-env", cfg.Fetcher.UserAgent)
	assert.Equal(t, "file:x.db", cfg.Database.DSN)
	assert.Equal(t, ":9999", cfg.Server.Listen)

	cfg, err = loadConfig(Opts{})
	require.NoError(t, err)
	assert.Equal(t, "RSS Feed Collector Bot/1.0", cfg.Fetcher.UserAgent)
}

func TestRun_Commands(t *testing.T) {
	ts := feedServer(t)
	dsn := testDSN(t)

	out, err := runCmd(t, Opts{DB: dsn, AddFeed: AddFeedCmd{Name: "good", URL: ts.URL + "/rss", Interval: 30}}, "add-feed")
	require.NoError(t, err)
	assert.Contains(t, out, "feed 1 (good) added, collected every 30 minutes")

	out, err = runCmd(t, Opts{DB: dsn, AddFeed: AddFeedCmd{Name: "bad", URL: ts.URL + "/broken", Interval: 60}}, "add-feed")
	require.NoError(t, err)
	assert.Contains(t, out, "feed 2 (bad) added")

	_, err = runCmd(t, Opts{DB: dsn, AddFeed: AddFeedCmd{Name: "dup", URL: ts.URL + "/rss", Interval: 60}}, "add-feed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCmd(t, Opts{DB: dsn, AddFeed: AddFeedCmd{Name: "ftp", URL: "ftp://example.com/rss", Interval: 60}}, "add-feed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid url")

	t.Run("stats before collection", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn}, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "total feeds:  2")
		assert.Contains(t, out, "active feeds: 2")
		assert.Contains(t, out, "feeds due for collection: 2")
	})

	t.Run("collect with a failing feed", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn}, "collect")
		require.ErrorIs(t, err, errFailures)
		assert.Contains(t, out, "collected 2 feeds: 1 succeeded, 1 failed")
		assert.Contains(t, out, "HTTP request failed with status 500")
	})

	t.Run("stats after collection", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn}, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "error feeds:  1")
		assert.Contains(t, out, "total items:  2")
		assert.Contains(t, out, "stored items: 2")
		assert.Contains(t, out, "feeds with errors:")
		assert.Contains(t, out, "feeds due for collection: 0")
	})

	t.Run("nothing due", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn}, "collect")
		require.NoError(t, err)
		assert.Contains(t, out, "no feeds due for collection")
	})

	t.Run("collect-feed not due", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn, CollectFeed: CollectFeedCmd{FeedID: 1}}, "collect-feed")
		require.NoError(t, err)
		assert.Contains(t, out, "feed 1 (good) is not due for collection")
		assert.Contains(t, out, "use --force")
	})

	t.Run("collect-feed forced", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn, CollectFeed: CollectFeedCmd{FeedID: 1, Force: true}}, "collect-feed")
		require.NoError(t, err)
		assert.Contains(t, out, "collected 1 feeds: 1 succeeded, 0 failed")
	})

	t.Run("collect-feed forced failing", func(t *testing.T) {
		_, err := runCmd(t, Opts{DB: dsn, CollectFeed: CollectFeedCmd{FeedID: 2, Force: true}}, "collect-feed")
		require.ErrorIs(t, err, errFailures)
	})

	t.Run("collect-feed unknown", func(t *testing.T) {
		_, err := runCmd(t, Opts{DB: dsn, CollectFeed: CollectFeedCmd{FeedID: 42}}, "collect-feed")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed 42 not found")
	})

	t.Run("forced collect of all active", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn, Collect: CollectCmd{Force: true}}, "collect")
		require.ErrorIs(t, err, errFailures)
		assert.Contains(t, out, "collected 2 feeds: 1 succeeded, 1 failed")
	})

	t.Run("recent", func(t *testing.T) {
		out, err := runCmd(t, Opts{DB: dsn, Recent: RecentCmd{Days: 7, Limit: 100}}, "recent")
		require.NoError(t, err)
		assert.Contains(t, out, "First item")
		assert.Contains(t, out, "https://example.com/2")

		_, err = runCmd(t, Opts{DB: dsn, Recent: RecentCmd{Days: 0, Limit: 100}}, "recent")
		require.Error(t, err)
	})
}

func TestRun_RecentEmpty(t *testing.T) {
	out, err := runCmd(t, Opts{DB: testDSN(t), Recent: RecentCmd{Days: 3, Limit: 10}}, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "no items published in the last 3 days")
}

func TestRun_ServerStartStop(t *testing.T) {
	ts := feedServer(t)

	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	configPath := filepath.Join(t.TempDir(), "config.yml")
	configContent := fmt.Sprintf(`
server:
  listen: "127.0.0.1:%d"
schedule:
  check_interval: 1h
feeds:
  - name: configured
    url: %s/rss
    interval: 15
`, port, ts.URL)
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- run(ctx, Opts{Config: configPath, DB: testDSN(t)}, "server", io.Discard)
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	// configured feed is registered and collected by the first scheduler run
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/v1/items/recent")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return bytes.Contains(body, []byte("https://example.com/1"))
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/feeds")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(body), `"name":"configured"`)
	assert.Contains(t, string(body), `"collect_interval_minutes":15`)

	cancel()
	select {
	case err := <-serverErr:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		SetupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		SetupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		SetupLog(true, "secret1", "secret2")
	})
}
