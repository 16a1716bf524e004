package mediafetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelsmith/internal/config"
)

func newTestDownloader(maxAttempts int) (*Downloader, *[]time.Duration) {
	d := NewDownloader(config.FetchConfig{Timeout: 5, MaxAttempts: maxAttempts})
	var slept []time.Duration
	d.sleep = func(dur time.Duration) { slept = append(slept, dur) }
	return d, &slept
}

func TestFetch_RetriesWithExponentialBackoff(t *testing.T) {
	payload := []byte("final content")
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "not yet", http.StatusInternalServerError)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	d, slept := newTestDownloader(3)
	dest := filepath.Join(t.TempDir(), "asset.mp4")

	require.NoError(t, d.Fetch(context.Background(), srv.URL, dest))

	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetch_ExhaustedBudgetNamesAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	d, _ := newTestDownloader(3)
	dest := filepath.Join(t.TempDir(), "asset.mp4")

	err := d.Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "partial file must be removed")
}

func TestFetch_TruncatedBodyTriggersRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// Declare more bytes than we send.
			w.Header().Set("Content-Length", "100")
			w.(http.Flusher).Flush()
			conn, _, _ := w.(http.Hijacker).Hijack()
			conn.Close()
			return
		}
		w.Write([]byte("complete"))
	}))
	defer srv.Close()

	d, slept := newTestDownloader(3)
	dest := filepath.Join(t.TempDir(), "asset.mp4")

	require.NoError(t, d.Fetch(context.Background(), srv.URL, dest))
	assert.Equal(t, 2, calls)
	assert.Len(t, *slept, 1)
}

func TestFetch_RejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d, _ := newTestDownloader(1)
	err := d.Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "f"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestFetch_FollowsSingleRedirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("redirected content"))
	}))
	defer target.Close()
	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer hop.Close()

	d, _ := newTestDownloader(1)
	dest := filepath.Join(t.TempDir(), "asset.mp4")
	require.NoError(t, d.Fetch(context.Background(), hop.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "redirected content", string(data))
}

func TestFetch_RejectsRedirectChains(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("too far"))
	}))
	defer final.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer second.Close()
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, second.URL, http.StatusMovedPermanently)
	}))
	defer first.Close()

	d, _ := newTestDownloader(1)
	err := d.Fetch(context.Background(), first.URL, filepath.Join(t.TempDir(), "f"))
	require.Error(t, err)
}
