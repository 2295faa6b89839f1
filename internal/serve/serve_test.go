package serve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func site(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":            "home",
		"404.html":              "custom not found",
		"docs/learn/index.html": "learn",
		"assets/css/site.css":   "body{}",
	}
	for rel, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "empty"), 0o755))
	return dir
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string, http.Header) {
	t.Helper()
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestHandler_ServesBuiltSite(t *testing.T) {
	srv := httptest.NewServer(Handler(site(t), "/", zerolog.Nop()))
	defer srv.Close()

	status, body, header := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "home", body)
	assert.Equal(t, "no-cache, no-store, must-revalidate", header.Get("Cache-Control"))

	status, body, _ = get(t, srv, "/docs/learn/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "learn", body)

	status, _, _ = get(t, srv, "/assets/css/site.css")
	assert.Equal(t, http.StatusOK, status)
}

func TestHandler_NoListingAndCustom404(t *testing.T) {
	srv := httptest.NewServer(Handler(site(t), "/", zerolog.Nop()))
	defer srv.Close()

	for _, p := range []string{"/docs/empty/", "/missing/", "/docs/"} {
		status, body, _ := get(t, srv, p)
		assert.Equal(t, http.StatusNotFound, status, p)
		assert.Equal(t, "custom not found", body, p)
	}
}

func TestHandler_BasePath(t *testing.T) {
	srv := httptest.NewServer(Handler(site(t), "/deodar/", zerolog.Nop()))
	defer srv.Close()

	status, body, _ := get(t, srv, "/deodar/docs/learn/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "learn", body)

	status, _, header := get(t, srv, "/")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/deodar/", header.Get("Location"))

	status, _, header = get(t, srv, "/deodar")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/deodar/", header.Get("Location"))

	status, body, _ = get(t, srv, "/deodar/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "home", body)

	status, _, _ = get(t, srv, "/docs/learn/")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWatcher_RebuildsAfterChange(t *testing.T) {
	dir := t.TempDir()
	var rebuilds atomic.Int32
	done := make(chan struct{}, 1)

	w := &Watcher{
		Paths:    []string{dir, filepath.Join(dir, "absent")},
		Debounce: 20 * time.Millisecond,
		Logger:   zerolog.Nop(),
		Rebuild: func(context.Context) error {
			rebuilds.Add(1)
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// The watch is registered asynchronously; keep touching files until it fires.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-done:
			cancel()
			require.NoError(t, <-errc)
			assert.GreaterOrEqual(t, rebuilds.Load(), int32(1))
			return
		case <-deadline:
			cancel()
			t.Fatal("watcher never triggered a rebuild")
		case <-tick.C:
			name := filepath.Join(dir, fmt.Sprintf("doc-%d.md", i))
			require.NoError(t, os.WriteFile(name, []byte("# change"), 0o644))
		}
	}
}

func TestWatcher_FilesIgnoreSiblings(t *testing.T) {
	dir := t.TempDir()
	siteFile := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(siteFile, []byte("identity: {}\n"), 0o644))
	var rebuilds atomic.Int32
	done := make(chan struct{}, 1)

	w := &Watcher{
		Files:    []string{siteFile},
		Debounce: 20 * time.Millisecond,
		Logger:   zerolog.Nop(),
		Rebuild: func(context.Context) error {
			rebuilds.Add(1)
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-done:
			break wait
		case <-deadline:
			t.Fatal("watcher never picked up the site file")
		case <-tick.C:
			require.NoError(t, os.WriteFile(siteFile, []byte("identity: {title: x}\n"), 0o644))
		}
	}
	tick.Stop()

	// Let trailing writes settle, then touch a sibling that must not count.
	time.Sleep(150 * time.Millisecond)
	before := rebuilds.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.html"), []byte("out"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, before, rebuilds.Load())

	cancel()
	require.NoError(t, <-errc)
}
